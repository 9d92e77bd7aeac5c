package commands

import (
	"flag"
	"fmt"

	"atac/internal/model"
	"atac/internal/workspace"
)

func requestAuth(ws *workspace.Workspace, colName, reqName string, args []string) {
	if len(args) == 0 {
		printAuth(ws, colName, reqName)
		return
	}
	kind, rest := args[0], args[1:]
	switch kind {
	case "none":
		setAuth(ws, colName, reqName, model.Auth{Kind: model.AuthNone})
	case "basic":
		fs := flag.NewFlagSet("request auth basic", flag.ExitOnError)
		username := fs.String("username", "", "basic auth username")
		password := fs.String("password", "", "basic auth password")
		fs.Parse(rest)
		setAuth(ws, colName, reqName, model.Auth{Kind: model.AuthBasic, Username: *username, Password: *password})
	case "bearer":
		fs := flag.NewFlagSet("request auth bearer", flag.ExitOnError)
		token := fs.String("token", "", "bearer token")
		fs.Parse(rest)
		setAuth(ws, colName, reqName, model.Auth{Kind: model.AuthBearer, Token: *token})
	case "jwt":
		fs := flag.NewFlagSet("request auth jwt", flag.ExitOnError)
		algorithm := fs.String("algorithm", string(model.JwtHS256), "JWT signing algorithm")
		secretType := fs.String("secret-type", string(model.SecretText), "secret encoding (text|base64|urlsafe_base64|pem|der)")
		secret := fs.String("secret", "", "secret value, or a file path for pem/der")
		payload := fs.String("payload", "{}", "claims payload, a JSON object")
		fs.Parse(rest)
		setAuth(ws, colName, reqName, model.Auth{Kind: model.AuthJWT, JWT: model.JwtSpec{
			Algorithm:  model.JwtAlgorithm(*algorithm),
			SecretType: model.JwtSecretType(*secretType),
			Secret:     *secret,
			Payload:    *payload,
		}})
	case "digest":
		fs := flag.NewFlagSet("request auth digest", flag.ExitOnError)
		username := fs.String("username", "", "digest auth username")
		password := fs.String("password", "", "digest auth password")
		fs.Parse(rest)
		setAuth(ws, colName, reqName, model.Auth{Kind: model.AuthDigest, Digest: model.DigestState{Username: *username, Password: *password}})
	default:
		printUnknown("request auth", kind)
		printUsage("usage: atac request auth <collection> <request> <none|basic|bearer|jwt|digest> [flags]")
	}
}

func setAuth(ws *workspace.Workspace, colName, reqName string, auth model.Auth) {
	if err := ws.UpdateRequest(colName, reqName, func(r *model.Request) { r.Auth = auth }); err != nil {
		fatal(err)
	}
}

func printAuth(ws *workspace.Workspace, colName, reqName string) {
	req, err := ws.GetRequest(colName, reqName)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("kind: %s\n", req.Auth.Kind)
	switch req.Auth.Kind {
	case model.AuthBasic:
		fmt.Printf("username: %s\n", req.Auth.Username)
	case model.AuthBearer:
		fmt.Printf("token: %s\n", req.Auth.Token)
	case model.AuthJWT:
		fmt.Printf("algorithm: %s\n", req.Auth.JWT.Algorithm)
	case model.AuthDigest:
		fmt.Printf("username: %s\n", req.Auth.Digest.Username)
	}
}
