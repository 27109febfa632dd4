package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyenvanduocit/zhtrans/pkg/detector"
)

var Detect = &cobra.Command{
	Use:     "detect [text...]",
	Short:   "Print the translation direction a text would take",
	Example: `zhtrans detect "你好 world"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := detector.Detect(strings.Join(args, " "))
		source, target := dir.Langs()
		cmd.Printf("%s (%s -> %s)\n", dir, source.Name(), target.Name())
		return nil
	},
}
