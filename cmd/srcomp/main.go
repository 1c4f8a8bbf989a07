// Copyright 2024, The srcomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command srcomp compresses and decompresses 16-bit word streams using the
// srcomp block codec.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/System25/srcomp"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		compress        bool
		decompress      bool
		usePreviousByte bool
		inputPath       string
		outputPath      string
		blockSizeKB     uint32
	)

	cmd := &cobra.Command{
		Use:           "srcomp",
		Short:         "Compress or decompress 16-bit word streams",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if compress == decompress {
				return fmt.Errorf("exactly one of -c or -d must be given")
			}

			in, out, err := openFiles(inputPath, outputPath)
			if err != nil {
				return err
			}
			defer in.Close()
			defer out.Close()

			if compress {
				return runCompress(in, out, blockSizeKB, usePreviousByte)
			}
			return runDecompress(in, out)
		},
	}

	cmd.Flags().BoolVarP(&compress, "compress", "c", false, "compress the input")
	cmd.Flags().BoolVarP(&decompress, "decompress", "d", false, "decompress the input")
	cmd.Flags().BoolVarP(&usePreviousByte, "previous-byte", "p", false,
		"use the previous-byte median heuristic to compress more")
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "input file (default stdin)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")
	cmd.Flags().Uint32VarP(&blockSizeKB, "block-size", "b", 1, "block size in kilobytes (1..65536)")

	return cmd
}

type stdinCloser struct{ io.Reader }

func (stdinCloser) Close() error { return nil }

type stdoutCloser struct{ io.Writer }

func (stdoutCloser) Close() error { return nil }

func openFiles(inputPath, outputPath string) (io.ReadCloser, io.WriteCloser, error) {
	in := io.ReadCloser(stdinCloser{os.Stdin})
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening input file %s: %w", inputPath, err)
		}
		in = f
	}

	out := io.WriteCloser(stdoutCloser{os.Stdout})
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening output file %s: %w", outputPath, err)
		}
		out = f
	}

	return in, out, nil
}

func runCompress(in io.Reader, out io.Writer, blockSizeKB uint32, usePreviousByte bool) error {
	zw, err := srcomp.NewWriter(out, srcomp.WriterConfig{
		BlockSizeKB:     blockSizeKB,
		UsePreviousByte: usePreviousByte,
	})
	if err != nil {
		return err
	}
	if _, err := io.Copy(zw, in); err != nil {
		return err
	}
	return zw.Close()
}

func runDecompress(in io.Reader, out io.Writer) error {
	zr, err := srcomp.NewReader(in)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, zr)
	return err
}
