package section

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/modmatch/internal/domain"
	"github.com/kailas-cloud/modmatch/internal/domain/relevance"
)

const posting = "Anforderungen\nPython\nBenefits\nKostenlose Snacks"

func TestEvaluateSection_AllMarksHeadings(t *testing.T) {
	got := New().EvaluateSection(posting, relevance.All)
	assert.Equal(t, "+\nAnforderungen\nPython\n-\nBenefits\nKostenlose Snacks", got)
}

func TestEvaluateSection_ImportantCarriesOver(t *testing.T) {
	got := New().EvaluateSection(posting, relevance.Important)
	assert.Equal(t, "Anforderungen\nPython", got)
}

func TestEvaluateSection_UnimportantCarriesOver(t *testing.T) {
	got := New().EvaluateSection(posting, relevance.Unimportant)
	assert.Equal(t, "Benefits\nKostenlose Snacks", got)
}

func TestEvaluateSection_LeadingUnknownOnlyUnderAll(t *testing.T) {
	text := "Wir sind ein Startup\nIhre Aufgaben\nGo programmieren"
	c := New()

	assert.Equal(t, "Wir sind ein Startup\n+\nIhre Aufgaben\nGo programmieren", c.EvaluateSection(text, relevance.All))
	assert.Equal(t, "Ihre Aufgaben\nGo programmieren", c.EvaluateSection(text, relevance.Important))
	assert.Equal(t, "", c.EvaluateSection(text, relevance.Unimportant))
}

func TestEvaluateSection_LabelAdvancesRegardlessOfMode(t *testing.T) {
	text := "Ihre Aufgaben\nGo\nWir bieten\nObst\nIhr Profil\nSQL"
	got := New().EvaluateSection(text, relevance.Important)
	assert.Equal(t, "Ihre Aufgaben\nGo\nIhr Profil\nSQL", got)
}

func TestEvaluateSection_BlankLinesAndTabs(t *testing.T) {
	text := "Anforderungen\n\n   \n\tPython\tDocker  \n"
	got := New().EvaluateSection(text, relevance.Important)
	assert.Equal(t, "Anforderungen\nPython\nDocker", got)
}

func TestEvaluateSection_CaseInsensitive(t *testing.T) {
	got := New().EvaluateSection("DEINE AUFGABEN\nKubernetes", relevance.Important)
	assert.Equal(t, "DEINE AUFGABEN\nKubernetes", got)
}

func TestEvaluateSection_LongLineIsNotImportantHeading(t *testing.T) {
	long := "Anforderungen " + strings.Repeat("x", MaxImportantHeadingLen)
	got := New().EvaluateSection(long+"\nPython", relevance.Important)
	assert.Equal(t, "", got)
}

func TestEvaluateSection_DualMatchEmitsTwiceUnderAll(t *testing.T) {
	// "Über" is an unimportant heading, "Ihr Profil" an important one.
	got := New().EvaluateSection("Über Ihr Profil", relevance.All)
	assert.Equal(t, "-\nÜber Ihr Profil\n+\nÜber Ihr Profil", got)
}

func TestEvaluateSection_Highlight(t *testing.T) {
	got := New(WithHighlight()).EvaluateSection("Ihre Aufgaben:\nGo", relevance.Important)
	assert.Equal(t, "*Ihre Aufgaben*:\nGo", got)
}

func TestEvaluateSection_HighlightEveryOccurrence(t *testing.T) {
	c := New(WithHighlight(), WithHeadings([]string{"Profil"}, []string{"Perks"}))
	got := c.EvaluateSection("Profil und Profil\nGo", relevance.Important)
	assert.Equal(t, "*Profil* und *Profil*\nGo", got)
}

func TestEvaluateSection_CustomHeadings(t *testing.T) {
	c := New(WithHeadings([]string{"Requirements"}, []string{"Perks"}))
	got := c.EvaluateSection("Requirements\nGo\nPerks\nFruit", relevance.Important)
	assert.Equal(t, "Requirements\nGo", got)
}

func TestEvaluateSection_Empty(t *testing.T) {
	assert.Equal(t, "", New().EvaluateSection("", relevance.All))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, relevance.All, m)

	m, err = ParseMode("IMPORTANT")
	require.NoError(t, err)
	assert.Equal(t, relevance.Important, m)

	_, err = ParseMode("some")
	assert.True(t, errors.Is(err, domain.ErrInvalidRequest))
}
