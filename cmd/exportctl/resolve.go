package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/uofr/moodle-block-export-quiz/internal/domain/entity"
)

func newResolveCmd() *cobra.Command {
	var quizID uint

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Show which question version every slot of a quiz resolves to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			slots, err := a.export.Resolver().Resolve(cmd.Context(), quizID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SLOT\tPAGE\tQUESTION\tVERSION\tPINNED\tSTATUS\tMAXMARK")
			for _, s := range slots {
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%t\t%s\t%s\n",
					s.SlotNumber, s.Page, optUint(s.QuestionID), optInt(s.Version),
					s.IsPinned(), describeStatus(s), s.MaxMark.String())
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d slots resolvable\n", entity.CountResolvable(slots), len(slots))
			return nil
		},
	}
	cmd.Flags().UintVar(&quizID, "quiz", 0, "quiz instance id")
	_ = cmd.MarkFlagRequired("quiz")
	return cmd
}

func describeStatus(s entity.SlotResolution) string {
	switch {
	case s.Status != nil:
		return *s.Status
	case s.IsRandom():
		return "random"
	default:
		return "-"
	}
}

func optUint(v *uint) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}

func optInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}
