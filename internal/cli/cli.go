// Package cli はPlateMate APIを操作するコマンドラインツールを提供する。
package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hitoshi/platemate/internal/client"
)

const name = "platemate-cli"

// fallbackSessionPath はユーザー設定ディレクトリを解決できない場合のセッションファイル。
const fallbackSessionPath = ".platemate-session.yaml"

// Command はルートコマンドを生成する。出力はoutに書き出す。
func Command(out io.Writer) *cli.Command {
	sessionPath, err := client.DefaultSessionPath()
	if err != nil {
		sessionPath = fallbackSessionPath
	}

	return &cli.Command{
		Name:   name,
		Usage:  "PlateMate recipe discovery client",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Usage:   "PlateMate API base URL",
				Value:   client.DefaultServerURL,
				Sources: cli.EnvVars("PLATEMATE_SERVER"),
			},
			&cli.StringFlag{
				Name:    "session",
				Usage:   "session file path",
				Value:   sessionPath,
				Sources: cli.EnvVars("PLATEMATE_SESSION"),
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   fmt.Sprintf("output format (%s)", strings.Join(client.SupportedFormats(), ", ")),
				Value:   string(client.FormatText),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "API request timeout",
				Value: client.DefaultTimeout,
			},
		},
		Commands: []*cli.Command{
			registerCmd(),
			loginCmd(),
			logoutCmd(),
			profileCmd(),
			whoamiCmd(),
			moodCmd(),
			ingredientsCmd(),
			restaurantsCmd(),
			saveCmd(),
		},
	}
}

// Run はargsでルートコマンドを実行する。argsの先頭はプログラム名。
func Run(ctx context.Context, out io.Writer, args []string) error {
	return Command(out).Run(ctx, args)
}

func registerCmd() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Create a new account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "display name"},
			&cli.StringFlag{Name: "email", Usage: "email address"},
			&cli.StringFlag{Name: "password", Usage: "password", Sources: cli.EnvVars("PLATEMATE_PASSWORD")},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withController(ctx, cmd, func(c *client.Controller) (*client.View, error) {
				return c.Register(ctx, cmd.String("name"), cmd.String("email"), cmd.String("password"))
			})
		},
	}
}

func loginCmd() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in and store the session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Usage: "email address"},
			&cli.StringFlag{Name: "password", Usage: "password", Sources: cli.EnvVars("PLATEMATE_PASSWORD")},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withController(ctx, cmd, func(c *client.Controller) (*client.View, error) {
				return c.Login(ctx, cmd.String("email"), cmd.String("password"))
			})
		},
	}
}

func logoutCmd() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Clear the stored session",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withController(ctx, cmd, func(c *client.Controller) (*client.View, error) {
				return c.Logout(ctx)
			})
		},
	}
}

func profileCmd() *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Show the profile and saved recipes",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withController(ctx, cmd, func(c *client.Controller) (*client.View, error) {
				return c.AuthGuard(ctx, client.PageProfile)
			})
		},
	}
}

func whoamiCmd() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the stored session",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withController(ctx, cmd, func(c *client.Controller) (*client.View, error) {
				return c.WhoAmI(ctx)
			})
		},
	}
}

func moodCmd() *cli.Command {
	return &cli.Command{
		Name:      "mood",
		Usage:     "Search recipes by mood",
		ArgsUsage: "<mood>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withController(ctx, cmd, func(c *client.Controller) (*client.View, error) {
				return c.SearchByMood(ctx, strings.Join(cmd.Args().Slice(), " "))
			})
		},
	}
}

func ingredientsCmd() *cli.Command {
	return &cli.Command{
		Name:      "ingredients",
		Usage:     "Suggest recipes from ingredients",
		ArgsUsage: "<ingredient>...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withController(ctx, cmd, func(c *client.Controller) (*client.View, error) {
				return c.SearchByIngredients(ctx, strings.Join(cmd.Args().Slice(), ","))
			})
		},
	}
}

func restaurantsCmd() *cli.Command {
	return &cli.Command{
		Name:      "restaurants",
		Usage:     "Find restaurants in a city",
		ArgsUsage: "<city>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withController(ctx, cmd, func(c *client.Controller) (*client.View, error) {
				return c.FindRestaurants(ctx, strings.Join(cmd.Args().Slice(), " "))
			})
		},
	}
}

func saveCmd() *cli.Command {
	return &cli.Command{
		Name:  "save",
		Usage: "Save a recipe to the profile",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "recipe-id", Usage: "recipe id from a search result"},
			&cli.StringFlag{Name: "title", Usage: "recipe title"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withController(ctx, cmd, func(c *client.Controller) (*client.View, error) {
				return c.SaveRecipe(ctx, cmd.String("recipe-id"), cmd.String("title"))
			})
		},
	}
}

// withController はフラグからControllerとRendererを組み立て、fnの結果を描画する。
// fnがViewとエラーの両方を返した場合は、描画した後にエラーを返す。
func withController(ctx context.Context, cmd *cli.Command, fn func(c *client.Controller) (*client.View, error)) error {
	format, err := client.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	api := client.NewAPIClient(cmd.String("server"), &http.Client{Timeout: timeoutOrDefault(cmd.Duration("timeout"))})
	controller := client.NewController(api, client.NewFileSessionStore(cmd.String("session")))
	renderer := client.NewRenderer(format, cmd.Root().Writer)

	view, err := fn(controller)
	if view != nil {
		if rerr := renderer.Render(view); rerr != nil {
			return rerr
		}
	}
	return err
}

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return client.DefaultTimeout
	}
	return d
}
