// Package workspace implements the Facade (§6): the narrow surface the UI
// (or the CLI, §6's "thin wrapper over the facade") consumes, tying
// persistence, model, variable resolution, auth, cookies, scripting and the
// two executors together.
package workspace

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sync"

	"atac/internal/atacx/errs"
	"atac/internal/atacx/logging"
	"atac/internal/config"
	"atac/internal/cookies"
	"atac/internal/exporter"
	"atac/internal/httpexec"
	"atac/internal/importer"
	"atac/internal/model"
	"atac/internal/persistence"
	"atac/internal/script"
	"atac/internal/variables"
	"atac/internal/wsexec"
)

// Workspace owns every Collection/Environment for one on-disk directory,
// plus the shared executors and cookie store used to run requests (§5
// "Shared resources"). The controller (CLI/UI) holds exclusive-mutation
// access through this type; background sends hold a handle to exactly one
// Request's ExecState at a time.
type Workspace struct {
	mu sync.Mutex

	Dir    string
	DryRun bool
	Config config.Config

	Collections  []*model.Collection
	Environments []*model.Environment

	activeEnv *model.Environment

	cookies  *cookies.Store
	resolver *variables.Resolver
	http     *httpexec.Executor
	ws       *wsexec.Executor

	wsConns map[*model.Request]*wsexec.Connection
}

// Open scans dir (§4.1 load_all) and constructs a ready-to-use Workspace.
func Open(dir string, filter *regexp.Regexp, dryRun bool) (*Workspace, error) {
	ws, err := persistence.LoadAll(dir, filter)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(filepath.Join(dir, "config.toml"))
	if err != nil {
		return nil, err
	}

	store, err := cookies.New()
	if err != nil {
		return nil, errs.IO("open_workspace", dir, err)
	}

	w := &Workspace{
		Dir: dir, DryRun: dryRun, Config: cfg,
		Collections:  ws.Collections,
		Environments: ws.Environments,
		cookies:      store,
		resolver:     variables.New(),
		http:         httpexec.New(store),
		ws:           wsexec.New(),
		wsConns:      map[*model.Request]*wsexec.Connection{},
	}
	w.http.Proxy = cfg.Proxy
	if len(w.Environments) > 0 {
		w.activeEnv = w.Environments[0]
	}
	return w, nil
}

// UseLogger installs l as the event sink of the HTTP and WebSocket
// executors; the importers do not log.
func (w *Workspace) UseLogger(l logging.EventLogger) {
	w.http.Logger = l
	w.ws.Logger = l
}

// SetActiveEnvironment selects the environment used by VariableResolver.
func (w *Workspace) SetActiveEnvironment(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, e := range w.Environments {
		if e.Name == name {
			w.activeEnv = e
			return nil
		}
	}
	return errs.NotFound("set_active_environment", name, fmt.Errorf("no such environment"))
}

func (w *Workspace) ActiveEnvironment() *model.Environment {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.activeEnv
}

// --- Workspace (collection) ops, §6 ---

func (w *Workspace) ListCollections() []*model.Collection {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*model.Collection, len(w.Collections))
	copy(out, w.Collections)
	return out
}

// GetCollection returns the named collection, for read-only inspection
// (the CLI's "collection info").
func (w *Workspace) GetCollection(name string) (*model.Collection, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	col, idx := w.findCollection(name)
	if idx < 0 {
		return nil, errs.NotFound("get_collection", name, fmt.Errorf("NotFound"))
	}
	return col, nil
}

// GetRequest returns the named request within colName, for read-only
// inspection (the CLI's "request info").
func (w *Workspace) GetRequest(colName, reqName string) (*model.Request, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	col, idx := w.findCollection(colName)
	if idx < 0 {
		return nil, errs.NotFound("get_request", colName, fmt.Errorf("NotFound"))
	}
	req, ridx := col.FindRequest(reqName)
	if ridx < 0 {
		return nil, errs.NotFound("get_request", reqName, fmt.Errorf("NotFound"))
	}
	return req, nil
}

// UpdateRequest applies mutate to the named request under lock and
// persists the owning collection, covering the CLI's per-field edits
// (url, method, params, auth, headers, body, scripts, settings).
func (w *Workspace) UpdateRequest(colName, reqName string, mutate func(*model.Request)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	col, idx := w.findCollection(colName)
	if idx < 0 {
		return errs.NotFound("update_request", colName, fmt.Errorf("NotFound"))
	}
	req, ridx := col.FindRequest(reqName)
	if ridx < 0 {
		return errs.NotFound("update_request", reqName, fmt.Errorf("NotFound"))
	}
	mutate(req)
	return persistence.SaveCollection(col, w.DryRun)
}

func (w *Workspace) findCollection(name string) (*model.Collection, int) {
	for i, c := range w.Collections {
		if c.Name == name {
			return c, i
		}
	}
	return nil, -1
}

func (w *Workspace) CreateCollection(name string, format model.FileFormat) (*model.Collection, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, idx := w.findCollection(name); idx >= 0 {
		return nil, errs.Conflict("create_collection", name, fmt.Errorf("AlreadyExists"))
	}
	col := &model.Collection{Name: name, Format: format, Path: persistence.CollectionPath(w.Dir, name, format), Selected: -1}
	if err := persistence.SaveCollection(col, w.DryRun); err != nil {
		return nil, err
	}
	w.Collections = append(w.Collections, col)
	return col, nil
}

func (w *Workspace) RenameCollection(oldName, newName string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	col, idx := w.findCollection(oldName)
	if idx < 0 {
		return errs.NotFound("rename_collection", oldName, fmt.Errorf("NotFound"))
	}
	if _, exists := w.findCollection(newName); exists >= 0 {
		return errs.Conflict("rename_collection", newName, fmt.Errorf("AlreadyExists"))
	}
	newPath := persistence.CollectionPath(w.Dir, newName, col.Format)
	col.Name = newName
	col.Path = newPath
	return persistence.SaveCollection(col, w.DryRun)
}

func (w *Workspace) DeleteCollection(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, idx := w.findCollection(name)
	if idx < 0 {
		return errs.NotFound("delete_collection", name, fmt.Errorf("NotFound"))
	}
	w.Collections = append(w.Collections[:idx], w.Collections[idx+1:]...)
	return nil
}

// DuplicateCollection copies col's in-memory content to a new path,
// appending " copy" until unique: the REDESIGN decision for §9's
// inconsistent source behavior (recorded in DESIGN.md).
func (w *Workspace) DuplicateCollection(name string) (*model.Collection, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	col, idx := w.findCollection(name)
	if idx < 0 {
		return nil, errs.NotFound("duplicate_collection", name, fmt.Errorf("NotFound"))
	}
	dup := &model.Collection{
		Name: col.Name + " copy", Format: col.Format, Selected: -1,
		Path: persistence.UniquePath(col.Path),
	}
	for _, r := range col.Requests {
		clone := *r
		clone.State = model.ExecState{}
		dup.Requests = append(dup.Requests, &clone)
	}
	if err := persistence.SaveCollection(dup, w.DryRun); err != nil {
		return nil, err
	}
	w.Collections = append(w.Collections, dup)
	return dup, nil
}

func (w *Workspace) MoveCollection(name, newDir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	col, idx := w.findCollection(name)
	if idx < 0 {
		return errs.NotFound("move_collection", name, fmt.Errorf("NotFound"))
	}
	col.Path = filepath.Join(newDir, filepath.Base(col.Path))
	return persistence.SaveCollection(col, w.DryRun)
}

// --- Request ops, §6 ---

func (w *Workspace) CreateRequest(colName, reqName string) (*model.Request, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	col, idx := w.findCollection(colName)
	if idx < 0 {
		return nil, errs.NotFound("create_request", colName, fmt.Errorf("NotFound"))
	}
	if col.HasRequestName(reqName) {
		return nil, errs.Conflict("create_request", reqName, fmt.Errorf("AlreadyExists"))
	}
	req := &model.Request{
		Name: reqName, Protocol: model.ProtocolHTTP, Method: "GET",
		Settings: model.DefaultRequestSettings(),
	}
	col.Requests = append(col.Requests, req)
	return req, persistence.SaveCollection(col, w.DryRun)
}

func (w *Workspace) RenameRequest(colName, oldName, newName string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	col, idx := w.findCollection(colName)
	if idx < 0 {
		return errs.NotFound("rename_request", colName, fmt.Errorf("NotFound"))
	}
	req, ridx := col.FindRequest(oldName)
	if ridx < 0 {
		return errs.NotFound("rename_request", oldName, fmt.Errorf("NotFound"))
	}
	if col.HasRequestName(newName) {
		return errs.Conflict("rename_request", newName, fmt.Errorf("AlreadyExists"))
	}
	req.Name = newName
	return persistence.SaveCollection(col, w.DryRun)
}

func (w *Workspace) DeleteRequest(colName, reqName string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	col, idx := w.findCollection(colName)
	if idx < 0 {
		return errs.NotFound("delete_request", colName, fmt.Errorf("NotFound"))
	}
	_, ridx := col.FindRequest(reqName)
	if ridx < 0 {
		return errs.NotFound("delete_request", reqName, fmt.Errorf("NotFound"))
	}
	col.Requests = append(col.Requests[:ridx], col.Requests[ridx+1:]...)
	if col.Selected == ridx {
		col.Selected = -1
	}
	return persistence.SaveCollection(col, w.DryRun)
}

func (w *Workspace) DuplicateRequest(colName, reqName string) (*model.Request, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	col, idx := w.findCollection(colName)
	if idx < 0 {
		return nil, errs.NotFound("duplicate_request", colName, fmt.Errorf("NotFound"))
	}
	req, ridx := col.FindRequest(reqName)
	if ridx < 0 {
		return nil, errs.NotFound("duplicate_request", reqName, fmt.Errorf("NotFound"))
	}
	clone := *req
	clone.State = model.ExecState{}
	clone.Name = col.UniqueRequestName(req.Name)
	col.Requests = append(col.Requests, &clone)
	return &clone, persistence.SaveCollection(col, w.DryRun)
}

func (w *Workspace) MoveRequest(colName, reqName string, newIndex int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	col, idx := w.findCollection(colName)
	if idx < 0 {
		return errs.NotFound("move_request", colName, fmt.Errorf("NotFound"))
	}
	_, ridx := col.FindRequest(reqName)
	if ridx < 0 {
		return errs.NotFound("move_request", reqName, fmt.Errorf("NotFound"))
	}
	if newIndex < 0 || newIndex >= len(col.Requests) {
		return errs.Validation("move_request", reqName, fmt.Errorf("index out of range"))
	}
	req := col.Requests[ridx]
	col.Requests = append(col.Requests[:ridx], col.Requests[ridx+1:]...)
	col.Requests = append(col.Requests[:newIndex], append([]*model.Request{req}, col.Requests[newIndex:]...)...)
	return persistence.SaveCollection(col, w.DryRun)
}

// Select marks req as the collection's selected request (§3: "exactly one
// request is selected at any time, or none").
func (w *Workspace) Select(colName, reqName string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	col, idx := w.findCollection(colName)
	if idx < 0 {
		return errs.NotFound("select", colName, fmt.Errorf("NotFound"))
	}
	_, ridx := col.FindRequest(reqName)
	if ridx < 0 {
		return errs.NotFound("select", reqName, fmt.Errorf("NotFound"))
	}
	col.Selected = ridx
	return nil
}

// TaskHandle represents an in-flight send the caller can await or cancel.
type TaskHandle struct {
	Done <-chan struct{}
	req  *model.Request
}

// Cancel trips the underlying request's cancellation handle.
func (h *TaskHandle) Cancel() { h.req.State.RequestCancel() }

// Wait blocks until the send completes and returns the final response.
func (h *TaskHandle) Wait() *model.Response {
	<-h.Done
	resp, _ := h.req.State.Snapshot()
	return resp
}

// Send executes req asynchronously, applying pre/post scripts around the
// HttpExecutor call (§4.6 post-phase). Per §8's "two concurrent sends of
// the same request: the second is a no-op", a second Send while pending
// returns a handle whose Done channel is already closed and whose Wait
// reflects the in-flight response snapshot rather than starting a new call.
func (w *Workspace) Send(colName, reqName string) (*TaskHandle, error) {
	col, idx := w.findCollectionLocked(colName)
	if idx < 0 {
		return nil, errs.NotFound("send", colName, fmt.Errorf("NotFound"))
	}
	req, ridx := col.FindRequest(reqName)
	if ridx < 0 {
		return nil, errs.NotFound("send", reqName, fmt.Errorf("NotFound"))
	}

	ctx, ok := req.State.Begin(context.Background())
	if !ok {
		done := make(chan struct{})
		close(done)
		return &TaskHandle{Done: done, req: req}, nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.runSend(ctx, req)
	}()
	return &TaskHandle{Done: done, req: req}, nil
}

func (w *Workspace) findCollectionLocked(name string) (*model.Collection, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.findCollection(name)
}

func (w *Workspace) runSend(ctx context.Context, req *model.Request) {
	env := w.ActiveEnvironment()
	var consoleLog string

	if req.PreRequestScript != "" {
		reqJSON := requestToJSON(req)
		envMap := map[string]string{}
		if env != nil {
			envMap = env.AsMap()
		}
		result, err := script.RunPre(req.PreRequestScript, reqJSON, envMap)
		if err != nil {
			consoleLog += result.Log
			req.State.Finish(&model.Response{Status: "PreRequestScript error"}, consoleLog)
			return
		}
		applyRequestJSON(req, result.Subject)
		consoleLog += result.Log
	}

	resp, err := w.http.Execute(ctx, req, env)
	if err != nil {
		req.State.Finish(&model.Response{Status: "ERROR"}, consoleLog+err.Error()+"\n")
		return
	}

	if req.PostRequestScript != "" && resp != nil {
		respJSON := responseToJSON(resp)
		envMap := map[string]string{}
		if env != nil {
			envMap = env.AsMap()
		}
		result, err := script.RunPost(req.PostRequestScript, respJSON, envMap)
		if err == nil {
			applyResponseJSON(resp, result.Subject)
			consoleLog += result.Log
		} else {
			consoleLog += result.Log
		}
	}

	req.State.Finish(resp, consoleLog)
}

func (w *Workspace) Cancel(colName, reqName string) error {
	col, idx := w.findCollectionLocked(colName)
	if idx < 0 {
		return errs.NotFound("cancel", colName, fmt.Errorf("NotFound"))
	}
	req, ridx := col.FindRequest(reqName)
	if ridx < 0 {
		return errs.NotFound("cancel", reqName, fmt.Errorf("NotFound"))
	}
	req.State.RequestCancel()
	return nil
}

// --- Environment ops, §6 ---

func (w *Workspace) findEnvironment(name string) (*model.Environment, int) {
	for i, e := range w.Environments {
		if e.Name == name {
			return e, i
		}
	}
	return nil, -1
}

// ListEnvironments returns a shallow copy of every loaded environment.
func (w *Workspace) ListEnvironments() []*model.Environment {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*model.Environment, len(w.Environments))
	copy(out, w.Environments)
	return out
}

// GetEnvironment returns the named environment, for read-only inspection
// (the CLI's "env info <name>").
func (w *Workspace) GetEnvironment(name string) (*model.Environment, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	env, idx := w.findEnvironment(name)
	if idx < 0 {
		return nil, errs.NotFound("get_env", name, fmt.Errorf("NotFound"))
	}
	return env, nil
}

func (w *Workspace) CreateEnv(name string, format model.FileFormat) (*model.Environment, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, idx := w.findEnvironment(name); idx >= 0 {
		return nil, errs.Conflict("create_env", name, fmt.Errorf("AlreadyExists"))
	}
	env := &model.Environment{Name: name, Path: persistence.EnvironmentPath(w.Dir, name, format), Format: format}
	if err := persistence.SaveEnvironment(env, w.DryRun); err != nil {
		return nil, err
	}
	w.Environments = append(w.Environments, env)
	return env, nil
}

func (w *Workspace) RenameEnv(oldName, newName string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	env, idx := w.findEnvironment(oldName)
	if idx < 0 {
		return errs.NotFound("rename_env", oldName, fmt.Errorf("NotFound"))
	}
	env.Name = newName
	env.Path = persistence.EnvironmentPath(w.Dir, newName, env.Format)
	return persistence.SaveEnvironment(env, w.DryRun)
}

func (w *Workspace) DeleteEnv(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, idx := w.findEnvironment(name)
	if idx < 0 {
		return errs.NotFound("delete_env", name, fmt.Errorf("NotFound"))
	}
	w.Environments = append(w.Environments[:idx], w.Environments[idx+1:]...)
	return nil
}

func (w *Workspace) SetVar(envName, key, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	env, idx := w.findEnvironment(envName)
	if idx < 0 {
		return errs.NotFound("set_var", envName, fmt.Errorf("NotFound"))
	}
	env.Set(key, value)
	return persistence.SaveEnvironment(env, w.DryRun)
}

func (w *Workspace) DeleteVar(envName, key string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	env, idx := w.findEnvironment(envName)
	if idx < 0 {
		return errs.NotFound("delete_var", envName, fmt.Errorf("NotFound"))
	}
	if !env.Delete(key) {
		return errs.NotFound("delete_var", key, fmt.Errorf("NotFound"))
	}
	return persistence.SaveEnvironment(env, w.DryRun)
}

func (w *Workspace) RenameVar(envName, oldKey, newKey string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	env, idx := w.findEnvironment(envName)
	if idx < 0 {
		return errs.NotFound("rename_var", envName, fmt.Errorf("NotFound"))
	}
	if !env.Rename(oldKey, newKey) {
		return errs.NotFound("rename_var", oldKey, fmt.Errorf("NotFound"))
	}
	return persistence.SaveEnvironment(env, w.DryRun)
}

func (w *Workspace) ListVars(envName string) ([]model.EnvEntry, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	env, idx := w.findEnvironment(envName)
	if idx < 0 {
		return nil, errs.NotFound("list_vars", envName, fmt.Errorf("NotFound"))
	}
	out := make([]model.EnvEntry, len(env.Vars))
	copy(out, env.Vars)
	return out, nil
}

// --- Cookie ops, §6 ---

func (w *Workspace) IterCookies() []cookies.Entry { return w.cookies.Iter() }
func (w *Workspace) DeleteCookie(domain, name string) { w.cookies.Remove(domain, name) }

// --- Import ops, §6 ---

func (w *Workspace) ImportPostman(data []byte, name string) (*importer.CollectionIndex, error) {
	idx, err := importer.ImportPostman(data, name, 64)
	if err != nil {
		return nil, err
	}
	w.adoptImported(idx.Collection)
	return idx, nil
}

func (w *Workspace) ImportCurl(path, name string) (*importer.CollectionIndex, error) {
	idx, err := importer.ImportCurlPath(path, name, importer.DefaultCurlMaxDepth)
	if err != nil {
		return nil, err
	}
	w.adoptImported(idx.Collection)
	return idx, nil
}

func (w *Workspace) ImportOpenAPI(data []byte, name string) (*importer.CollectionIndex, error) {
	idx, err := importer.ImportOpenAPI(data, name)
	if err != nil {
		return nil, err
	}
	w.adoptImported(idx.Collection)
	return idx, nil
}

func (w *Workspace) adoptImported(col *model.Collection) {
	w.mu.Lock()
	defer w.mu.Unlock()
	col.Path = persistence.CollectionPath(w.Dir, col.Name, col.Format)
	persistence.SaveCollection(col, w.DryRun)
	w.Collections = append(w.Collections, col)
}

// --- Export op, §6 ---

func (w *Workspace) ExportRequest(colName, reqName string, format exporter.Format) (string, error) {
	col, idx := w.findCollectionLocked(colName)
	if idx < 0 {
		return "", errs.NotFound("export_request", colName, fmt.Errorf("NotFound"))
	}
	req, ridx := col.FindRequest(reqName)
	if ridx < 0 {
		return "", errs.NotFound("export_request", reqName, fmt.Errorf("NotFound"))
	}
	return exporter.Export(req, w.ActiveEnvironment(), format)
}
