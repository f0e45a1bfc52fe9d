package domain

import (
	"testing"

	"github.com/stretchr/testify/mock"

	m "github.com/mouse-blink/turretlint/internal/model"
)

// mockAnalyzer lives beside the tests because domain/mocks imports domain.
type mockAnalyzer struct {
	mock.Mock
}

func newMockAnalyzer(t *testing.T) *mockAnalyzer {
	a := &mockAnalyzer{}
	a.Test(t)

	t.Cleanup(func() { a.AssertExpectations(t) })

	return a
}

func (a *mockAnalyzer) Analyze(text string) m.Analysis {
	ret := a.Called(text)

	return ret.Get(0).(m.Analysis)
}
