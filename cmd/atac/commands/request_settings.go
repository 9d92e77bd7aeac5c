package commands

import (
	"flag"
	"fmt"

	"atac/internal/model"
	"atac/internal/workspace"
)

func requestSettings(ws *workspace.Workspace, colName, reqName string, args []string) {
	req, err := ws.GetRequest(colName, reqName)
	if err != nil {
		fatal(err)
	}
	cur := req.Settings
	if len(args) == 0 {
		printSettings(cur)
		return
	}

	fs := flag.NewFlagSet("request settings", flag.ExitOnError)
	allowRedirects := fs.Bool("allow-redirects", cur.AllowRedirects, "follow redirects")
	storeCookies := fs.Bool("store-cookies", cur.StoreReceivedCookies, "store cookies received in responses")
	insecureCerts := fs.Bool("insecure-certs", cur.AcceptInvalidCerts, "accept invalid TLS certificates")
	insecureHostnames := fs.Bool("insecure-hostnames", cur.AcceptInvalidHostnames, "accept invalid TLS hostnames")
	timeout := fs.Duration("timeout", cur.Timeout, "request timeout")
	useConfigProxy := fs.Bool("use-config-proxy", cur.UseConfigProxy, "route through the workspace proxy")
	pretty := fs.Bool("pretty", cur.PrettyPrintResponseContent, "pretty-print the response body")
	fs.Parse(args)

	settings := model.RequestSettings{
		AllowRedirects:             *allowRedirects,
		StoreReceivedCookies:       *storeCookies,
		AcceptInvalidCerts:         *insecureCerts,
		AcceptInvalidHostnames:     *insecureHostnames,
		Timeout:                    *timeout,
		UseConfigProxy:             *useConfigProxy,
		PrettyPrintResponseContent: *pretty,
	}
	if err := ws.UpdateRequest(colName, reqName, func(r *model.Request) { r.Settings = settings }); err != nil {
		fatal(err)
	}
}

func printSettings(s model.RequestSettings) {
	fmt.Printf("allow_redirects:               %v\n", s.AllowRedirects)
	fmt.Printf("store_received_cookies:        %v\n", s.StoreReceivedCookies)
	fmt.Printf("accept_invalid_certs:          %v\n", s.AcceptInvalidCerts)
	fmt.Printf("accept_invalid_hostnames:      %v\n", s.AcceptInvalidHostnames)
	fmt.Printf("timeout:                       %s\n", s.Timeout)
	fmt.Printf("use_config_proxy:              %v\n", s.UseConfigProxy)
	fmt.Printf("pretty_print_response_content: %v\n", s.PrettyPrintResponseContent)
}
