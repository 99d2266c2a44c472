package main

import (
	"github.com/spf13/cobra"

	"web3stack-api/internal/questionnaire"
	"web3stack-api/internal/recommendations"
	"web3stack-api/internal/stack"
)

type resolveOptions struct {
	projectType string
	level       string
	chain       string
	useCases    []string
	preferences []string
	output      string
	preview     bool
	unlocked    bool
}

func newResolveCmd(root *rootOptions) *cobra.Command {
	opts := &resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the recommendation for a set of answers",
		Example: `  stackctl resolve --project-type nft --level intermediate --chain ethereum
  stackctl resolve --project-type defi --level advanced --chain solana --use-case storage,compute -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := root.loadCatalog()
			if err != nil {
				return err
			}
			answers := opts.answers()
			if err := questionnaire.Validate(answers); err != nil {
				return err
			}
			bundle := stack.NewResolver(catalog).Resolve(answers)
			if !opts.preview {
				return writeOutput(cmd.OutOrStdout(), opts.output, bundle)
			}
			return writeOutput(cmd.OutOrStdout(), opts.output, recommendations.Result{
				Recommendation: bundle,
				Preview:        recommendations.BuildPreview(bundle, recommendations.DefaultPreviewLimits(), opts.unlocked),
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.projectType, "project-type", string(stack.ProjectOther), "project type")
	f.StringVar(&opts.level, "level", string(stack.LevelBeginner), "experience level")
	f.StringVar(&opts.chain, "chain", string(stack.ChainEthereum), "target blockchain")
	f.StringSliceVar(&opts.useCases, "use-case", nil, "use cases (repeat or comma separate)")
	f.StringSliceVar(&opts.preferences, "preference", nil, "preferences (repeat or comma separate)")
	f.StringVarP(&opts.output, "output", "o", "json", "output format: json or yaml")
	f.BoolVar(&opts.preview, "preview", false, "include the preview layout")
	f.BoolVar(&opts.unlocked, "unlocked", false, "render the preview for a premium user")
	return cmd
}

func (o *resolveOptions) answers() stack.Answers {
	a := stack.Answers{
		ProjectType:     stack.ProjectType(o.projectType),
		ExperienceLevel: stack.ExperienceLevel(o.level),
		Blockchain:      stack.Blockchain(o.chain),
		UseCases:        make([]stack.UseCase, 0, len(o.useCases)),
		Preferences:     make([]stack.Preference, 0, len(o.preferences)),
	}
	for _, u := range o.useCases {
		a.UseCases = append(a.UseCases, stack.UseCase(u))
	}
	for _, p := range o.preferences {
		a.Preferences = append(a.Preferences, stack.Preference(p))
	}
	return a
}
