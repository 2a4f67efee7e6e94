package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sparkquiz/internal/config"
	"github.com/abhisek/sparkquiz/internal/ordering"
	"github.com/abhisek/sparkquiz/internal/question"
	"github.com/abhisek/sparkquiz/internal/session"
	"github.com/abhisek/sparkquiz/internal/source"
)

var questionFiles = map[string]string{
	"intro.yaml": `type: quiz
id: intro
starter: true
title: Introduction
question: Where do uploads go?
answers:
  - text: The bucket
    correct: true
    points: 2
  - text: Nowhere
`,
	"detail.yaml": `type: quiz
id: detail
followup_to: intro
question: How large is a chunk?
answers:
  - text: 8 MiB
    correct: true
  - text: 1 byte
`,
	"extra.yaml": `type: quiz
question: Pick one
answers:
  - text: This
    correct: true
  - text: That
`,
	"orphan.yaml": `type: quiz
followup_to: ghost
question: Follows nothing
answers:
  - text: Yes
    correct: true
`,
	"notes.yaml":  "type: note\ntext: not a question\n",
	"broken.yaml": "type: quiz\nanswers: [\n",
}

func writeQuestions(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func newTestCmd(run func(*cobra.Command, []string) error, args ...string) (*cobra.Command, *bytes.Buffer) {
	c := &cobra.Command{Use: "test", RunE: run, SilenceUsage: true, SilenceErrors: true}
	bindFlags(c.PersistentFlags())
	c.Flags().Int("trials", 1, "")

	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(io.Discard)
	c.SetArgs(append([]string{"--env-file", ""}, args...))
	return c, &out
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("SPARKQUIZ_QUESTIONS_DIR", "/from/env")
	t.Setenv("SPARKQUIZ_SEED", "7")

	c, _ := newTestCmd(nil)
	require.NoError(t, c.ParseFlags([]string{"--env-file", "", "--questions-dir", "/from/flag", "--scoring", "max"}))

	cfg, err := loadConfig(c)
	require.NoError(t, err)

	assert.Equal(t, "/from/flag", cfg.QuestionsDir)
	assert.Equal(t, session.ScoringMax, cfg.Scoring)
	assert.Equal(t, uint64(7), cfg.Seed, "unset flags keep env values")
}

func TestLoadConfig_InvalidFlag(t *testing.T) {
	c, _ := newTestCmd(nil)
	require.NoError(t, c.ParseFlags([]string{"--env-file", "", "--scoring", "median"}))

	_, err := loadConfig(c)
	assert.ErrorContains(t, err, "SCORING_MODE")
}

func TestLoadConfig_EnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SPARKQUIZ_MANIFEST=list.yaml\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("SPARKQUIZ_MANIFEST") })

	c, _ := newTestCmd(nil)
	require.NoError(t, c.ParseFlags([]string{"--env-file", envFile}))

	cfg, err := loadConfig(c)
	require.NoError(t, err)
	assert.Equal(t, "list.yaml", cfg.Manifest)
}

func TestLoadConfig_MissingEnvFileIsIgnored(t *testing.T) {
	c, _ := newTestCmd(nil)
	require.NoError(t, c.ParseFlags([]string{"--env-file", filepath.Join(t.TempDir(), "absent.env")}))

	_, err := loadConfig(c)
	assert.NoError(t, err)
}

func TestOrderCommand(t *testing.T) {
	dir := writeQuestions(t, questionFiles)
	c, out := newTestCmd(runOrder, "--questions-dir", dir, "--seed", "3")

	require.NoError(t, c.Execute())

	got := out.String()
	assert.Contains(t, got, "Introduction")
	assert.Contains(t, got, "4 questions")
	assert.Contains(t, got, "No ordering violations.")

	lines := strings.Split(got, "\n")
	assert.Contains(t, lines[2], "intro.yaml", "the only starter is asked first")
}

func TestOrderCommand_Trials(t *testing.T) {
	dir := writeQuestions(t, questionFiles)
	c, out := newTestCmd(runOrder, "--questions-dir", dir, "--trials", "25")

	require.NoError(t, c.Execute())

	assert.Contains(t, out.String(), "4 questions, 25 trials")
	assert.Contains(t, out.String(), "trials with violations: 0")
}

func TestOrderCommand_BadTrials(t *testing.T) {
	c, _ := newTestCmd(runOrder, "--trials", "0")
	assert.Error(t, c.Execute())
}

func TestValidateCommand(t *testing.T) {
	dir := writeQuestions(t, questionFiles)
	c, out := newTestCmd(runValidate, "--questions-dir", dir)

	require.NoError(t, c.Execute())

	got := out.String()
	assert.Contains(t, got, "broken.yaml")
	assert.Contains(t, got, "skipped (not a quiz question): notes.yaml")
	assert.Contains(t, got, `orphan.yaml follows up on unknown id "ghost"`)
	assert.Contains(t, got, "4 valid, 1 skipped, 1 failed (6 total)")
}

func TestValidateCommand_NothingValid(t *testing.T) {
	dir := writeQuestions(t, map[string]string{"notes.yaml": questionFiles["notes.yaml"]})
	c, out := newTestCmd(runValidate, "--questions-dir", dir)

	err := c.Execute()
	assert.ErrorIs(t, err, source.ErrNoQuestions)
	assert.Contains(t, out.String(), "0 valid, 1 skipped, 0 failed")
}

func TestReferenceProblems(t *testing.T) {
	recs := []question.Record{
		{Source: "a.yaml", ID: "a"},
		{Source: "b.yaml", ID: "a"},
		{Source: "c.yaml", FollowupTo: "a"},
		{Source: "d.yaml", FollowupTo: "zzz"},
	}

	assert.Equal(t, []string{
		`b.yaml reuses id "a" from a.yaml`,
		`d.yaml follows up on unknown id "zzz"`,
	}, referenceProblems(recs))
}

func TestNewSession_SeedIsReproducible(t *testing.T) {
	dir := writeQuestions(t, questionFiles)
	cfg := &config.Config{
		QuestionsDir:     dir,
		Manifest:         "manifest.yaml",
		LoadTimeout:      source.DefaultTimeout,
		FetchConcurrency: 2,
		Scoring:          session.ScoringMax,
		Seed:             99,
	}

	start := startSession(cfg, zerolog.Nop())
	first, err := start(t.Context())
	require.NoError(t, err)
	second, err := start(t.Context())
	require.NoError(t, err)

	var a, b []string
	for _, r := range first.Questions() {
		a = append(a, r.Source)
	}
	for _, r := range second.Questions() {
		b = append(b, r.Source)
	}
	assert.Equal(t, a, b)
	assert.Empty(t, ordering.Verify(first.Questions()))
	assert.Equal(t, 2+1+1+1, first.TotalPossibleScore())
}

func TestRunTrials(t *testing.T) {
	recs := []question.Record{
		{Source: "p", ID: "p"},
		{Source: "c", FollowupTo: "p"},
	}
	stats := runTrials(ordering.NewSeeded(1, zerolog.Nop()), recs, 10)

	assert.Equal(t, trialStats{Trials: 10}, stats)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "sparkquiz (devel)\n", out.String())
}
