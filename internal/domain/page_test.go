package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name  string
		input string
		page  Page
		known bool
	}{
		{"practice", "Practice", PagePractice, true},
		{"routines", "Routines", PageRoutines, true},
		{"account", "Account", PageAccount, true},
		{"imports", "Imports", PageImports, true},
		{"lowercase is unknown", "practice", Page("practice"), false},
		{"empty", "", Page(""), false},
		{"garbage", "NotAPage", Page("NotAPage"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, known := ParsePage(tt.input)
			assert.Equal(t, tt.known, known)
			if known {
				assert.Equal(t, tt.page, page)
			}
		})
	}
}

func TestPage_Restricted(t *testing.T) {
	assert.True(t, PageRoutines.Restricted())
	assert.True(t, PageItems.Restricted())
	assert.True(t, PageImports.Restricted())

	assert.False(t, PagePractice.Restricted())
	assert.False(t, PageAccount.Restricted())
	assert.False(t, PageFAQ.Restricted())
}

func TestPage_SuppressesWidget(t *testing.T) {
	assert.True(t, PagePractice.SuppressesWidget())
	assert.True(t, PageImports.SuppressesWidget())
	assert.False(t, PageAccount.SuppressesWidget())
}
