package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/sceneswap"
	"github.com/aretw0/sceneswap/pkg/domain"
)

// Report renders an import result as markdown.
func Report(scenePath string, res *sceneswap.ImportResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Import of `%s`\n\n", scenePath)
	fmt.Fprintf(&b, "- Replaced nodes: **%d**\n", res.Replaced)
	switch {
	case res.SavePath != "":
		fmt.Fprintf(&b, "- Saved to: `%s`\n", res.SavePath)
	case res.Save == nil && res.Err == nil:
		b.WriteString("- Saved to: _not saved_\n")
	default:
		b.WriteString("- Saved to: _failed_\n")
	}

	if len(res.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range res.Warnings {
			if w.Path != "" {
				fmt.Fprintf(&b, "- `%s`: %s\n", w.Path, w)
			} else {
				fmt.Fprintf(&b, "- %s\n", w)
			}
		}
	}

	if res.Save != nil {
		b.WriteString("\n## Save steps\n\n| Step | Result |\n|---|---|\n")
		for _, s := range []struct {
			step    domain.Step
			outcome domain.StepOutcome
		}{
			{domain.StepDirectory, res.Save.Directory},
			{domain.StepPack, res.Save.Pack},
			{domain.StepWrite, res.Save.Write},
		} {
			fmt.Fprintf(&b, "| %s | %s |\n", s.step, stepResult(s.outcome))
		}
	}

	if res.Err != nil {
		b.WriteString("\n## Errors\n\n")
		for _, line := range strings.Split(res.Err.Error(), "\n") {
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}
	return b.String()
}

func stepResult(o domain.StepOutcome) string {
	switch {
	case !o.Attempted:
		return "skipped"
	case o.Err != nil:
		return fmt.Sprintf("failed (%s)", domain.CodeOf(o.Err))
	default:
		return "ok"
	}
}
