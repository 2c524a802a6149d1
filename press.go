package main

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newPressCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "press <mode|inc|switch|dec|status>...",
		Short: "Press buttons of a running clock through its control socket",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendCommands(opts.socket, args, cmd.OutOrStdout())
		},
	}
}

// sendCommands sends each command and copies the replies to w. It stops at
// the first error reply.
func sendCommands(path string, cmds []string, w io.Writer) error {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return fmt.Errorf("could not connect to clock at %s: %w", path, err)
	}
	defer conn.Close()

	r := bufio.NewReader(conn)
	for _, c := range cmds {
		conn.SetDeadline(time.Now().Add(2 * time.Second))
		if _, err := fmt.Fprintln(conn, c); err != nil {
			return err
		}
		reply, err := r.ReadString('\n')
		if err != nil {
			return fmt.Errorf("no reply to %q: %w", c, err)
		}
		reply = strings.TrimRight(reply, "\n")
		if strings.HasPrefix(reply, "error: ") {
			return fmt.Errorf("%s: %s", c, strings.TrimPrefix(reply, "error: "))
		}
		fmt.Fprintln(w, reply)
	}
	return nil
}
