package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	cli := cli.App{
		Usage: "Pack, unpack and inspect binary G-code containers",
		Commands: []*cli.Command{
			{
				Name:      "pack",
				Usage:     "Pack ASCII G-code into a binary container",
				Action:    packContainer,
				ArgsUsage: "GCODE_FILE  OUTPUT_FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "printer",
						Usage: "embed thumbnails sized for printer `SLUG`",
					},
					&cli.StringSliceFlag{
						Name:  "thumbnail",
						Usage: "embed a thumbnail of size `WxH` (repeatable)",
					},
					&cli.StringFlag{
						Name:  "pattern",
						Usage: "thumbnail pattern, either `chevrons` or `tower`",
						Value: "chevrons",
					},
					&cli.BoolFlag{
						Name: "compress-gcode",
						Usage: "deflate-compress the G-code payload (only for " +
							"consumers known to decompress it)",
					},
					&cli.StringFlag{
						Name:  "producer",
						Usage: "producer `NAME` written to the file metadata",
					},
				},
			},
			{
				Name:      "unpack",
				Usage:     "Extract ASCII G-code from a binary container",
				Action:    unpackContainer,
				ArgsUsage: "CONTAINER_FILE  [OUTPUT_FILE]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "thumbnails",
						Usage: "also write embedded thumbnails into `DIR`",
					},
				},
			},
			{
				Name:      "inspect",
				Usage:     "List and validate every block in a container",
				Action:    inspectContainer,
				ArgsUsage: "CONTAINER_FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "csv",
						Usage: "emit the block list as CSV",
					},
				},
			},
		},
	}

	err := cli.Run(os.Args)
	if err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}
