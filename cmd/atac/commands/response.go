package commands

import (
	"fmt"

	"atac/internal/model"
	"atac/internal/workspace"
)

// printResponse sends colName/reqName, waits for completion and prints the
// response summary, shared by "collection send" and "request send".
func printResponse(ws *workspace.Workspace, colName, reqName string) {
	handle, err := ws.Send(colName, reqName)
	if err != nil {
		fatal(err)
	}
	resp := handle.Wait()
	printResponseSummary(resp)
}

func printResponseSummary(resp *model.Response) {
	if resp == nil {
		fmt.Println("no response")
		return
	}
	fmt.Printf("status:   %s\n", resp.Status)
	fmt.Printf("duration: %s\n", resp.Duration)
	for _, h := range resp.Headers {
		fmt.Printf("%s: %s\n", h.Key, h.Value)
	}
	if resp.Content.Kind == model.ContentImage {
		fmt.Printf("<%s image, %d bytes>\n", resp.Content.ImageFormat, len(resp.Content.Bytes))
		return
	}
	if resp.Content.Text != "" {
		fmt.Println()
		fmt.Println(resp.Content.Text)
	}
}
