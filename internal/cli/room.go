package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Create or join rooms over the websocket",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomJoinCmd())

	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	var nick string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "create <game-type>",
		Short: "Create a room and stay connected",
		Long: `Create a room for one of: mole, balloon, dice.

Once connected, typed lines are sent as chat. Slash commands:
  /start     start a round (host only)
  /act [n]   play an action (n is the board index for mole)
  /end       force the running round to end (host only)
  /quit      leave and disconnect

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := json.Marshal(map[string]string{
				"gameType": args[0],
				"nickname": nick,
			})
			if err != nil {
				return err
			}
			return runRoomSession(wsEnvelope{Type: "create_room", Payload: payload}, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&nick, "nick", "anonymous", "Display name")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

func newRoomJoinCmd() *cobra.Command {
	var nick string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "join <code>",
		Short: "Join an existing room and stay connected",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := json.Marshal(map[string]string{
				"roomCode": args[0],
				"nickname": nick,
			})
			if err != nil {
				return err
			}
			return runRoomSession(wsEnvelope{Type: "join_room", Payload: payload}, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&nick, "nick", "anonymous", "Display name")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// wsEnvelope mirrors the server's inbound message framing
type wsEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// wsEvent is the loosely-typed view of server events the CLI prints
type wsEvent struct {
	Type      string          `json:"type"`
	RoomCode  string          `json:"roomCode,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

func runRoomSession(initial wsEnvelope, jsonOutput bool) error {
	conn, _, err := websocket.DefaultDialer.Dial(client.WebsocketURL(), nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if err := conn.WriteJSON(initial); err != nil {
		return fmt.Errorf("failed to send intent: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var event wsEvent
			if err := conn.ReadJSON(&event); err != nil {
				return
			}
			printEvent(event, jsonOutput)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	inputCh := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			inputCh <- scanner.Text()
		}
		close(inputCh)
	}()

	for {
		select {
		case <-done:
			return nil
		case <-sigCh:
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			<-done
			return nil
		case line, ok := <-inputCh:
			if !ok {
				<-done
				return nil
			}
			env, quit, err := envelopeForInput(line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				continue
			}
			if env != nil {
				if err := conn.WriteJSON(env); err != nil {
					return fmt.Errorf("failed to send: %w", err)
				}
			}
			if quit {
				<-done
				return nil
			}
		}
	}
}

// envelopeForInput turns one typed line into an outbound message.
// Plain text becomes chat; /-prefixed lines are commands.
func envelopeForInput(line string) (*wsEnvelope, bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false, nil
	}

	if !strings.HasPrefix(line, "/") {
		payload, err := json.Marshal(map[string]string{"text": line})
		if err != nil {
			return nil, false, err
		}
		return &wsEnvelope{Type: "chat", Payload: payload}, false, nil
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case "/start":
		return &wsEnvelope{Type: "start_round"}, false, nil
	case "/act":
		index := 0
		if len(fields) > 1 {
			parsed, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, false, fmt.Errorf("invalid index %q", fields[1])
			}
			index = parsed
		}
		payload, err := json.Marshal(map[string]int{"index": index})
		if err != nil {
			return nil, false, err
		}
		return &wsEnvelope{Type: "act", Payload: payload}, false, nil
	case "/end":
		return &wsEnvelope{Type: "force_end"}, false, nil
	case "/quit":
		return &wsEnvelope{Type: "leave_room"}, true, nil
	default:
		return nil, false, fmt.Errorf("unknown command %s", fields[0])
	}
}

func printEvent(event wsEvent, jsonOutput bool) {
	if jsonOutput {
		data, _ := json.Marshal(event)
		fmt.Println(string(data))
		return
	}

	ts := event.Timestamp.Format("15:04:05")
	if len(event.Payload) > 0 {
		fmt.Printf("[%s] %s %s\n", ts, event.Type, compactJSON(event.Payload))
	} else {
		fmt.Printf("[%s] %s\n", ts, event.Type)
	}
}

func compactJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
