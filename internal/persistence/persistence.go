// Package persistence implements atomic read/write of collection and
// environment files in two formats (JSON, YAML), filename/path derivation,
// and the directory scan that bootstraps a workspace at startup (§4.1).
//
// Atomicity follows the teacher's settings.go:writeSettingsFileAtomic
// pattern: write to a temp file in the same directory, chmod 0o600, close,
// then rename over the destination.
package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"atac/internal/atacx/errs"
	"atac/internal/model"
)

const envFilePrefix = ".env."

// diskCollection mirrors model.Collection minus transient fields, so a
// round trip through disk never leaks Selected/ExecState (§6: "Fields
// beyond the Model ... MUST NOT appear on disk").
type diskCollection struct {
	Name         string           `json:"name" yaml:"name"`
	Requests     []*diskRequest   `json:"requests" yaml:"requests"`
	LastPosition *int             `json:"last_position,omitempty" yaml:"last_position,omitempty"`
}

type diskRequest struct {
	Name              string               `json:"name" yaml:"name"`
	URL               string               `json:"url" yaml:"url"`
	Method            string               `json:"method" yaml:"method"`
	Protocol          model.Protocol       `json:"protocol" yaml:"protocol"`
	Auth              model.Auth           `json:"auth" yaml:"auth"`
	Headers           model.KVList         `json:"headers" yaml:"headers"`
	Params            model.KVList         `json:"params" yaml:"params"`
	Body              model.Body           `json:"body" yaml:"body"`
	PreRequestScript  string               `json:"pre_request_script,omitempty" yaml:"pre_request_script,omitempty"`
	PostRequestScript string               `json:"post_request_script,omitempty" yaml:"post_request_script,omitempty"`
	Settings          model.RequestSettings `json:"settings" yaml:"settings"`
	Messages          []model.WsMessage    `json:"messages,omitempty" yaml:"messages,omitempty"`
}

func toDisk(c *model.Collection) *diskCollection {
	dc := &diskCollection{Name: c.Name, LastPosition: c.LastPosition}
	for _, r := range c.Requests {
		dc.Requests = append(dc.Requests, &diskRequest{
			Name: r.Name, URL: r.URL, Method: r.Method, Protocol: r.Protocol,
			Auth: r.Auth, Headers: r.Headers, Params: r.Params, Body: r.Body,
			PreRequestScript: r.PreRequestScript, PostRequestScript: r.PostRequestScript,
			Settings: r.Settings, Messages: r.Messages,
		})
	}
	return dc
}

func fromDisk(dc *diskCollection, path string, format model.FileFormat) *model.Collection {
	c := &model.Collection{
		Name: dc.Name, Path: path, Format: format,
		LastPosition: dc.LastPosition, Selected: -1,
	}
	for _, dr := range dc.Requests {
		c.Requests = append(c.Requests, &model.Request{
			Name: dr.Name, URL: dr.URL, Method: dr.Method, Protocol: dr.Protocol,
			Auth: dr.Auth, Headers: dr.Headers, Params: dr.Params, Body: dr.Body,
			PreRequestScript: dr.PreRequestScript, PostRequestScript: dr.PostRequestScript,
			Settings: dr.Settings, Messages: dr.Messages,
		})
	}
	if dc.LastPosition != nil && *dc.LastPosition >= 0 && *dc.LastPosition < len(c.Requests) {
		c.Selected = *dc.LastPosition
	}
	return c
}

// Workspace is the result of a directory scan: every collection and
// environment found, each slice sorted by name.
type Workspace struct {
	Dir          string
	DryRun       bool
	Collections  []*model.Collection
	Environments []*model.Environment
}

// LoadAll scans dir for collection files (.json/.yaml/.yml) and environment
// files (.env.<name>.<ext>), decoding each according to its extension
// (§4.1). filter, if non-nil, is matched against collection base filenames.
func LoadAll(dir string, filter *regexp.Regexp) (*Workspace, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errs.IO("load_all", dir, err)
	}
	ws := &Workspace{Dir: dir}
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		name := ent.Name()
		full := filepath.Join(dir, name)
		if strings.HasPrefix(name, envFilePrefix) {
			env, err := loadEnvironmentFile(full)
			if err != nil {
				return nil, err
			}
			ws.Environments = append(ws.Environments, env)
			continue
		}
		format, ok := model.ParseFileFormat(filepath.Ext(name))
		if !ok {
			continue
		}
		if filter != nil && !filter.MatchString(name) {
			continue
		}
		col, err := loadCollectionFile(full, format)
		if err != nil {
			return nil, err
		}
		ws.Collections = append(ws.Collections, col)
	}
	sort.Slice(ws.Collections, func(i, j int) bool { return ws.Collections[i].Name < ws.Collections[j].Name })
	sort.Slice(ws.Environments, func(i, j int) bool { return ws.Environments[i].Name < ws.Environments[j].Name })
	return ws, nil
}

func loadCollectionFile(path string, format model.FileFormat) (*model.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.IO("load_collection", path, err)
	}
	var dc diskCollection
	if err := decode(format, data, &dc); err != nil {
		return nil, errs.New(errs.KindIO, "load_collection", path, fmt.Errorf("CorruptFile: %w", err))
	}
	if dc.Name == "" {
		dc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return fromDisk(&dc, path, format), nil
}

// environment files are named `.env.<name>.<ext>`; their encoded body is
// just the ordered var list (order-preserving map, §3).
type diskEnvironment struct {
	Vars []model.EnvEntry `json:"vars" yaml:"vars"`
}

var envFileRe = regexp.MustCompile(`^\.env\.(.+)\.(json|yaml|yml)$`)

func loadEnvironmentFile(path string) (*model.Environment, error) {
	base := filepath.Base(path)
	m := envFileRe.FindStringSubmatch(base)
	if m == nil {
		return nil, errs.Validation("load_environment", path, fmt.Errorf("does not match .env.<name>.<ext> pattern"))
	}
	format, _ := model.ParseFileFormat(m[2])
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.IO("load_environment", path, err)
	}
	var de diskEnvironment
	if err := decode(format, data, &de); err != nil {
		return nil, errs.New(errs.KindIO, "load_environment", path, fmt.Errorf("CorruptFile: %w", err))
	}
	return &model.Environment{Name: m[1], Vars: de.Vars, Path: path, Format: format}, nil
}

func decode(format model.FileFormat, data []byte, v any) error {
	switch format {
	case model.FormatYAML:
		return yaml.Unmarshal(data, v)
	default:
		return json.Unmarshal(data, v)
	}
}

func encode(format model.FileFormat, v any) ([]byte, error) {
	switch format {
	case model.FormatYAML:
		return yaml.Marshal(v)
	default:
		return json.MarshalIndent(v, "", "  ")
	}
}

// SaveCollection serializes c to its recorded Path/Format, honoring dryRun
// (§4.1 "dry-run mode"). On success it persists c.LastPosition from
// c.Selected so the next load resumes the same selection.
func SaveCollection(c *model.Collection, dryRun bool) error {
	if c.Selected >= 0 {
		pos := c.Selected
		c.LastPosition = &pos
	}
	data, err := encode(c.Format, toDisk(c))
	if err != nil {
		return errs.IO("save_collection", c.Path, err)
	}
	if dryRun {
		return nil
	}
	return writeAtomic(c.Path, data)
}

// SaveEnvironment serializes env to its recorded Path/Format.
func SaveEnvironment(env *model.Environment, dryRun bool) error {
	data, err := encode(env.Format, diskEnvironment{Vars: env.Vars})
	if err != nil {
		return errs.IO("save_environment", env.Path, err)
	}
	if dryRun {
		return nil
	}
	return writeAtomic(env.Path, data)
}

// CollectionPath derives the path for a newly-created collection (§4.1).
func CollectionPath(dir, name string, format model.FileFormat) string {
	return filepath.Join(dir, fmt.Sprintf("%s.%s", name, format.Ext()))
}

// EnvironmentPath derives the path for a newly-created environment (§4.1).
func EnvironmentPath(dir, name string, format model.FileFormat) string {
	return filepath.Join(dir, fmt.Sprintf("%s%s.%s", envFilePrefix, name, format.Ext()))
}

// UniquePath appends " copy" to base (before the extension) until the
// resulting path does not exist, matching the collection duplicate-naming
// convention in §4.1 (REDESIGN decision recorded in DESIGN.md: "append
// copy" chosen over numeric suffixing for §9's inconsistent source).
func UniquePath(path string) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	candidate := path
	for {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
		base += " copy"
		candidate = base + ext
	}
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errs.IO("write_atomic", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".atac-*.tmp")
	if err != nil {
		return errs.IO("write_atomic", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return errs.IO("write_atomic", tmpName, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errs.IO("write_atomic", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return errs.IO("write_atomic", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errs.IO("write_atomic", path, err)
	}
	return nil
}
