package cmd

import (
	"flag"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// fileFlags are the flags taking a file or directory name.
var fileFlags = map[string]bool{
	"config":        true,
	"o":             true,
	"dir":           true,
	"debug-output":  true,
	"debug-metrics": true,
}

// Completion describes the subcommands and their flags for shell completion.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, c := range Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		root.Sub[c.Name()] = &complete.Command{
			Flags: flagPredictors(fs),
			Args:  predict.Files("*"),
		}
	}
	return root
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if fileFlags[f.Name] {
			flags[f.Name] = predict.Files("*")
		} else {
			flags[f.Name] = predict.Nothing
		}
	})
	return flags
}
