package authcheck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openchat-labs/azdoctor/internal/envfile"
)

func resolveFor(t *testing.T, vars map[string]string, probe LoginProbe) Result {
	t.Helper()
	resolver := NewResolver(WithStat(statExists))
	return resolver.Resolve(context.Background(), envfile.New(vars), probe)
}

func TestRecommendNoMethodsSuggestsServicePrincipal(t *testing.T) {
	t.Parallel()

	result := resolveFor(t, nil, &fakeProbe{})
	recs := Recommend(result)

	require.Len(t, recs, 2)
	require.Equal(t, LevelAction, recs[0].Level)
	require.Contains(t, recs[0].Text, "service principal")
	require.Contains(t, recs[1].Text, "Managed Identity")
}

func TestRecommendCLIOnlyWarnsAboutContainers(t *testing.T) {
	t.Parallel()

	probe := &fakeProbe{identity: &Identity{AccountName: "user@example.com", SubscriptionName: "Dev", SubscriptionID: "id"}}
	result := resolveFor(t, nil, probe)
	require.Equal(t, 1, result.ConfiguredCount)

	recs := Recommend(result)
	require.Len(t, recs, 1)
	require.Equal(t, LevelWarning, recs[0].Level)
	require.Contains(t, recs[0].Text, "non-interactive")
}

func TestRecommendConfiguredIsPositive(t *testing.T) {
	t.Parallel()

	result := resolveFor(t, map[string]string{
		VarClientID:     "a",
		VarClientSecret: "b",
		VarTenantID:     "c",
	}, &fakeProbe{})

	recs := Recommend(result)
	require.Len(t, recs, 1)
	require.Equal(t, LevelOK, recs[0].Level)
}

func TestRecommendSurfacesBlockingCertDefect(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(WithStat(statMissing))
	result := resolver.Resolve(context.Background(), envfile.New(map[string]string{
		VarClientID:        "a",
		VarClientSecret:    "b",
		VarTenantID:        "c",
		VarCertificatePath: "/no/such/file.pem",
	}), &fakeProbe{})

	recs := Recommend(result)
	require.Equal(t, LevelAction, recs[0].Level)
	require.Contains(t, recs[0].Text, VarCertificatePath)
	// The secret method is still configured, so the overall note stays positive.
	require.Equal(t, LevelOK, recs[len(recs)-1].Level)
}

func TestRecommendCLIPlusExplicitCredentialNoWarning(t *testing.T) {
	t.Parallel()

	probe := &fakeProbe{identity: &Identity{AccountName: "user@example.com"}}
	result := resolveFor(t, map[string]string{
		VarClientID:     "a",
		VarClientSecret: "b",
		VarTenantID:     "c",
	}, probe)
	require.Equal(t, 2, result.ConfiguredCount)

	recs := Recommend(result)
	require.Len(t, recs, 1)
	require.Equal(t, LevelOK, recs[0].Level)
}
