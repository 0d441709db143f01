package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/openchat-labs/azdoctor/internal/authcheck"
	"github.com/openchat-labs/azdoctor/internal/deployconfig"
)

// Report bundles everything one check run produced, ready to render.
// Rendering is presentation only; the underlying result fields are the
// contract.
type Report struct {
	EnvFile         string
	Result          authcheck.Result
	Recommendations []authcheck.Recommendation
	ConfigWarnings  []string
	ParseWarnings   []string
}

// Options controls report formatting.
type Options struct {
	Unicode bool
	Color   bool
	Verbose bool
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Render writes the human-readable report.
func (r Report) Render(w io.Writer, opts Options) {
	fmt.Fprintln(w, r.styled(opts, headerStyle, "Authentication methods:"))

	for _, eval := range r.Result.Evaluations {
		icon := eval.Status.Icon()
		if !opts.Unicode {
			icon = eval.Status.IconFallback()
		}

		label := eval.Status.Label()
		if opts.Color {
			label = lipgloss.NewStyle().Foreground(eval.Status.Color()).Render(label)
		}

		fmt.Fprintf(w, "  %s %-32s %s\n", icon, eval.Method.DisplayName(), label)

		if opts.Verbose || eval.Status.Usable() || eval.Blocking {
			for _, detail := range eval.Details {
				fmt.Fprintf(w, "      %s\n", r.styled(opts, dimStyle, detail.Label+": "+detail.Value))
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, r.styled(opts, headerStyle, "Deployment configuration:"))
	missing := make(map[string]bool, len(r.Result.MissingDeployment))
	for _, name := range r.Result.MissingDeployment {
		missing[name] = true
	}
	for _, name := range deployconfig.RequiredVars() {
		if missing[name] {
			fmt.Fprintf(w, "  %s %s (missing)\n", missingIcon(opts), name)
		} else {
			fmt.Fprintf(w, "  %s %s\n", okIcon(opts), name)
		}
	}

	warnings := append(append([]string{}, r.ParseWarnings...), r.ConfigWarnings...)
	if len(warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, r.styled(opts, headerStyle, "Warnings:"))
		for _, warning := range warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Summary: %d authentication method(s) configured\n", r.Result.ConfiguredCount)

	if len(r.Recommendations) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, r.styled(opts, headerStyle, "Recommendations:"))
		for _, rec := range r.Recommendations {
			fmt.Fprintf(w, "  %s %s\n", recommendationPrefix(rec.Level, opts), rec.Text)
		}
	}

	fmt.Fprintln(w)
	if r.Result.OverallReady {
		fmt.Fprintln(w, "Ready: the chat application has everything it needs.")
	} else {
		fmt.Fprintln(w, "Not ready: fix the items above and run the check again.")
	}
}

func (r Report) styled(opts Options, style lipgloss.Style, text string) string {
	if !opts.Color {
		return text
	}
	return style.Render(text)
}

func okIcon(opts Options) string {
	if opts.Unicode {
		return "✔"
	}
	return "[OK]"
}

func missingIcon(opts Options) string {
	if opts.Unicode {
		return "✖"
	}
	return "[XX]"
}

func recommendationPrefix(level authcheck.RecommendationLevel, opts Options) string {
	switch level {
	case authcheck.LevelWarning:
		if opts.Unicode {
			return "⚠"
		}
		return "[!!]"
	case authcheck.LevelAction:
		return "->"
	default:
		if opts.Unicode {
			return "✔"
		}
		return "[OK]"
	}
}

type jsonDetail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type jsonEvaluation struct {
	Method   string       `json:"method"`
	Status   string       `json:"status"`
	Blocking bool         `json:"blocking,omitempty"`
	Details  []jsonDetail `json:"details,omitempty"`
}

type jsonRecommendation struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

type jsonPayload struct {
	EnvFile           string               `json:"env_file,omitempty"`
	Evaluations       []jsonEvaluation     `json:"evaluations"`
	ConfiguredCount   int                  `json:"configured_count"`
	DeploymentReady   bool                 `json:"deployment_ready"`
	MissingDeployment []string             `json:"missing_deployment,omitempty"`
	OverallReady      bool                 `json:"overall_ready"`
	Recommendations   []jsonRecommendation `json:"recommendations,omitempty"`
	Warnings          []string             `json:"warnings,omitempty"`
}

// RenderJSON writes the machine-readable report.
func (r Report) RenderJSON(w io.Writer) error {
	payload := jsonPayload{
		EnvFile:           r.EnvFile,
		Evaluations:       make([]jsonEvaluation, 0, len(r.Result.Evaluations)),
		ConfiguredCount:   r.Result.ConfiguredCount,
		DeploymentReady:   r.Result.DeploymentReady,
		MissingDeployment: r.Result.MissingDeployment,
		OverallReady:      r.Result.OverallReady,
	}

	for _, eval := range r.Result.Evaluations {
		entry := jsonEvaluation{
			Method:   eval.Method.String(),
			Status:   eval.Status.String(),
			Blocking: eval.Blocking,
		}
		for _, detail := range eval.Details {
			entry.Details = append(entry.Details, jsonDetail{Label: detail.Label, Value: detail.Value})
		}
		payload.Evaluations = append(payload.Evaluations, entry)
	}

	for _, rec := range r.Recommendations {
		payload.Recommendations = append(payload.Recommendations, jsonRecommendation{
			Level: string(rec.Level),
			Text:  rec.Text,
		})
	}

	payload.Warnings = append(append([]string{}, r.ParseWarnings...), r.ConfigWarnings...)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
