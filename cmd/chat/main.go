package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/mirudeesh/liqueno-backend/internal/chatclient"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "base URL of the chat server")
	token := flag.String("token", "", "bearer token for authenticated requests (optional)")
	flag.Parse()

	client := chatclient.New(*serverURL, *token)
	conv := chatclient.NewConversation()

	bold := color.New(color.Bold)
	prompt := color.New(color.FgCyan, color.Bold)
	errText := color.New(color.FgRed)

	bold.Println("Liqueno chat. Type a message, /clear to reset, /quit to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024)

	for {
		prompt.Print("you> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return
		case "/clear":
			conv.Clear()
			fmt.Println("conversation cleared")
			continue
		}

		err := client.Send(context.Background(), conv, line, func(delta string) {
			fmt.Print(delta)
		})
		fmt.Println()
		if err != nil {
			errText.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}
