package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newExecCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <sql>...",
		Short: "Run SQL statements and print result rows",
		Example: `  vecsh exec "SELECT vector_create()" "SELECT vector_add(1, 7)" "SELECT value FROM vector_elements WHERE vector_id = 1"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var statements []string
			for _, arg := range args {
				statements = append(statements, splitStatements(arg)...)
			}
			return c.run(cmd.Context(), statements)
		},
	}
}

func newRunCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "run <file.sql>",
		Short: "Run a SQL script and print result rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading script: %w", err)
			}
			return c.run(cmd.Context(), splitStatements(string(data)))
		},
	}
}

func (c *cli) run(ctx context.Context, statements []string) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := openSession(ctx, c.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.close(ctx); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return s.exec(ctx, c.out, statements)
}

// splitStatements splits a script on semicolons outside quoted text and
// drops "--" line comments.
func splitStatements(script string) []string {
	var (
		out   []string
		buf   strings.Builder
		quote rune
	)
	runes := []rune(script)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0:
			buf.WriteRune(r)
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
			buf.WriteRune(r)
		case r == '-' && i+1 < len(runes) && runes[i+1] == '-':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			buf.WriteRune('\n')
		case r == ';':
			if stmt := strings.TrimSpace(buf.String()); stmt != "" {
				out = append(out, stmt)
			}
			buf.Reset()
		default:
			buf.WriteRune(r)
		}
	}
	if stmt := strings.TrimSpace(buf.String()); stmt != "" {
		out = append(out, stmt)
	}
	return out
}
