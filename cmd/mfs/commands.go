package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"
	"github.com/weberc2/mfs/pkg/file"
	"github.com/weberc2/mfs/pkg/image"

	. "github.com/weberc2/mfs/pkg/types"
)

func (sh *shell) app() *cli.App {
	return &cli.App{
		Name:  appName,
		Usage: "a block-based filesystem in a single image file",
		Description: "run with no arguments for an interactive shell; " +
			"otherwise run one command, optionally against --image",
		Writer:    sh.out,
		ErrWriter: sh.out,
		Flags: []cli.Flag{&cli.StringFlag{
			Name:    "image",
			Aliases: []string{"i"},
			Usage: "open this image before the command and save it " +
				"afterwards",
		}},
		Action: func(ctx *cli.Context) error {
			if ctx.Args().Present() {
				return fmt.Errorf("unknown command `%s`", ctx.Args().First())
			}
			if sh.interactive {
				return nil
			}
			return sh.loop()
		},
		Commands: append([]*cli.Command{{
			Name:      "createfs",
			Usage:     "create a new, empty image",
			ArgsUsage: "<path>",
			Flags: []cli.Flag{&cli.StringFlag{
				Name:  "label",
				Usage: "volume label; defaults to the file name",
			}},
			Action: sh.lifecycle(1, 1, func(ctx *cli.Context) error {
				if err := sh.img.Create(ctx.Args().Get(0), &image.Params{
					Geometry: sh.conf.Geometry.Geometry(),
					Label:    ctx.String("label"),
				}); err != nil {
					return err
				}
				if sh.interactive {
					return nil
				}
				// outside the shell nothing else could save it
				if err := sh.img.Save(); err != nil {
					return err
				}
				return sh.img.Close()
			}),
		}, {
			Name:  "savefs",
			Usage: "write the open image to its path",
			Action: sh.lifecycle(0, 0, func(ctx *cli.Context) error {
				return sh.img.Save()
			}),
		}, {
			Name:      "open",
			Usage:     "open an existing image",
			ArgsUsage: "<path>",
			Action: sh.lifecycle(1, 1, func(ctx *cli.Context) error {
				return sh.img.Open(ctx.Args().Get(0))
			}),
		}, {
			Name:  "close",
			Usage: "close the open image without saving",
			Action: sh.lifecycle(0, 0, func(ctx *cli.Context) error {
				return sh.img.Close()
			}),
		}, {
			Name:      "list",
			Usage:     "list files; -h adds hidden files, -a attribute bits",
			ArgsUsage: "[-h|-a]",
			// `-h` would otherwise be taken as a request for help
			SkipFlagParsing: true,
			Action: sh.action(0, 1, func(ctx *cli.Context) error {
				opts, err := parseListOptions(ctx.Args().First())
				if err != nil {
					return err
				}
				files, err := file.List(sh.img, opts)
				if err != nil {
					return err
				}
				return file.WriteListing(sh.out, files, opts)
			}),
		}, {
			Name:  "df",
			Usage: "show free space",
			Action: sh.action(0, 0, func(ctx *cli.Context) error {
				free, err := file.FreeBytes(sh.img)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(sh.out, "%d bytes free\n", free)
				return err
			}),
		}, {
			Name:      "insert",
			Usage:     "copy a host file into the image",
			ArgsUsage: "<path>",
			Action: sh.action(1, 1, func(ctx *cli.Context) error {
				return file.Insert(sh.img, ctx.Args().Get(0))
			}),
		}, {
			Name:      "delete",
			Usage:     "delete a file; it can be recovered with undel",
			ArgsUsage: "<name>",
			Action: sh.action(1, 1, func(ctx *cli.Context) error {
				return file.Delete(sh.img, ctx.Args().Get(0))
			}),
		}, {
			Name:      "undel",
			Usage:     "recover the most recently deleted file with this name",
			ArgsUsage: "<name>",
			Action: sh.action(1, 1, func(ctx *cli.Context) error {
				return file.Undelete(sh.img, ctx.Args().Get(0))
			}),
		}, {
			Name:            "attrib",
			Usage:           "set (+h, +r) or clear (-h, -r) a file's attribute",
			ArgsUsage:       "<+h|+r|-h|-r> <name>",
			SkipFlagParsing: true,
			Action: sh.action(2, 2, func(ctx *cli.Context) error {
				return file.Attrib(
					sh.img,
					ctx.Args().Get(0),
					ctx.Args().Get(1),
				)
			}),
		}, {
			Name:            "read",
			Usage:           "print a byte range of a file as hex",
			ArgsUsage:       "<name> <startByte> <numBytes>",
			SkipFlagParsing: true,
			Action: sh.action(3, 3, func(ctx *cli.Context) error {
				start, err := parseByte(ctx.Args().Get(1))
				if err != nil {
					return err
				}
				n, err := parseByte(ctx.Args().Get(2))
				if err != nil {
					return err
				}
				data, err := file.ReadRange(sh.img, ctx.Args().Get(0), start, n)
				if err != nil {
					return err
				}
				return file.WriteHex(sh.out, data)
			}),
		}, {
			Name:      "retrieve",
			Usage:     "copy a file out of the image",
			ArgsUsage: "<name> [outputPath]",
			Action: sh.action(1, 2, func(ctx *cli.Context) error {
				return file.Retrieve(
					sh.img,
					ctx.Args().Get(0),
					ctx.Args().Get(1),
				)
			}),
		}, {
			Name:  "info",
			Usage: "describe the open image",
			Action: sh.action(0, 0, func(ctx *cli.Context) error {
				info, err := file.Stat(sh.img)
				if err != nil {
					return err
				}
				return file.WriteInfo(sh.out, &info)
			}),
		}},
			sh.cipherCommand("encrypt"),
			sh.cipherCommand("decrypt"),
		),
	}
}

// cipherCommand builds encrypt or decrypt, which are the same XOR.
func (sh *shell) cipherCommand(name string) *cli.Command {
	return &cli.Command{
		Name:            name,
		Usage:           "XOR a file's content with a one-character key",
		ArgsUsage:       "<name> <key>",
		SkipFlagParsing: true,
		Action: sh.action(2, 2, func(ctx *cli.Context) error {
			key := ctx.Args().Get(1)
			if len(key) != 1 {
				return fmt.Errorf(
					"%s: key must be a single character; found `%s`",
					name,
					key,
				)
			}
			return file.ToggleCipher(sh.img, ctx.Args().Get(0), key[0])
		}),
	}
}

// lifecycle wraps the commands that open, create, save and close images
// themselves. It only checks the argument count.
func (sh *shell) lifecycle(
	min int,
	max int,
	f func(ctx *cli.Context) error,
) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		if n := ctx.Args().Len(); n < min || n > max {
			return fmt.Errorf(
				"%s: wanted %s; found `%d`",
				ctx.Command.Name,
				arity(min, max),
				n,
			)
		}
		return f(ctx)
	}
}

// action is `lifecycle` for file commands: when --image was given, it also
// opens the image beforehand and saves it after a successful command.
func (sh *shell) action(
	min int,
	max int,
	f func(ctx *cli.Context) error,
) cli.ActionFunc {
	return sh.lifecycle(min, max, func(ctx *cli.Context) error {
		path := ctx.String("image")
		if path == "" {
			return f(ctx)
		}
		if err := sh.img.Open(path); err != nil {
			return err
		}
		if err := f(ctx); err != nil {
			if closeErr := sh.img.Close(); closeErr != nil {
				return fmt.Errorf("%w (closing image: %v)", err, closeErr)
			}
			return err
		}
		if !sh.img.IsOpen() {
			return nil
		}
		if err := sh.img.Save(); err != nil {
			return err
		}
		return sh.img.Close()
	})
}

func arity(min, max int) string {
	if min == max {
		return fmt.Sprintf("`%d` arguments", min)
	}
	return fmt.Sprintf("`%d` to `%d` arguments", min, max)
}

func parseListOptions(option string) (file.ListOptions, error) {
	switch option {
	case "":
		return file.ListOptions{}, nil
	case "-h":
		return file.ListOptions{ShowHidden: true}, nil
	case "-a":
		return file.ListOptions{ShowAttributes: true}, nil
	default:
		return file.ListOptions{}, fmt.Errorf(
			"list: unknown option `%s`; wanted `-h` or `-a`",
			option,
		)
	}
}

func parseByte(s string) (Byte, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing byte offset `%s`: %w", s, err)
	}
	return Byte(n), nil
}
