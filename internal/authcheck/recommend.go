package authcheck

// RecommendationLevel classifies a recommendation line.
type RecommendationLevel string

const (
	LevelOK      RecommendationLevel = "ok"
	LevelWarning RecommendationLevel = "warning"
	LevelAction  RecommendationLevel = "action"
)

// Recommendation is one line of guidance derived from a resolution result.
type Recommendation struct {
	Level RecommendationLevel
	Text  string
}

// Recommend derives guidance from a resolution result. It is a pure function
// so the guidance can be tested apart from rendering.
func Recommend(result Result) []Recommendation {
	var recs []Recommendation

	for _, eval := range result.Evaluations {
		if !eval.Blocking {
			continue
		}
		if eval.Status == StatusCertNotFound {
			recs = append(recs, Recommendation{
				Level: LevelAction,
				Text:  "The certificate referenced by " + VarCertificatePath + " does not exist. Fix the path or remove the variable.",
			})
		}
	}

	switch {
	case result.ConfiguredCount == 0:
		recs = append(recs,
			Recommendation{
				Level: LevelAction,
				Text:  "No authentication method is configured. Create a service principal and set " + VarClientID + ", " + VarClientSecret + " and " + VarTenantID + ".",
			},
			Recommendation{
				Level: LevelAction,
				Text:  "On Azure-hosted deployments prefer Managed Identity (" + VarUseManagedIdentity + "=true); for local development 'az login' or interactive auth also work.",
			},
		)
	case onlyCLIFallback(result):
		recs = append(recs, Recommendation{
			Level: LevelWarning,
			Text:  "Only the Azure CLI session is usable. That works locally but not in containers or other non-interactive deployments; configure an explicit credential for those.",
		})
	default:
		recs = append(recs, Recommendation{
			Level: LevelOK,
			Text:  "Authentication is configured.",
		})
	}

	return recs
}

// onlyCLIFallback reports whether the CLI session is the single usable entry.
func onlyCLIFallback(result Result) bool {
	if result.ConfiguredCount != 1 {
		return false
	}
	eval, ok := result.Evaluation(MethodCLIFallback)
	return ok && eval.Status.Usable()
}
