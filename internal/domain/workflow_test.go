package domain

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/turretlint/internal/adapter"
	adaptermocks "github.com/mouse-blink/turretlint/internal/adapter/mocks"
	controllermocks "github.com/mouse-blink/turretlint/internal/controller/mocks"
	m "github.com/mouse-blink/turretlint/internal/model"
)

var fixedTime = time.Date(2024, 12, 30, 8, 0, 0, 0, time.UTC)

type workflowMocks struct {
	fs       *adaptermocks.MockSourceFSAdapter
	store    *adaptermocks.MockReportStore
	ui       *controllermocks.MockUI
	analyzer *mockAnalyzer
}

func newTestWorkflow(t *testing.T, analyzer Analyzer) (*workflow, workflowMocks) {
	t.Helper()

	mk := workflowMocks{
		fs:    adaptermocks.NewMockSourceFSAdapter(t),
		store: adaptermocks.NewMockReportStore(t),
		ui:    controllermocks.NewMockUI(t),
	}

	if analyzer == nil {
		mk.analyzer = newMockAnalyzer(t)
		analyzer = mk.analyzer
	}

	w := &workflow{
		fsAdapter:   mk.fs,
		reportStore: mk.store,
		ui:          mk.ui,
		analyzer:    analyzer,
		now:         func() time.Time { return fixedTime },
		newRunID:    func() string { return "run-1" },
	}

	return w, mk
}

const (
	cleanProgram = "N1000 G109 L1;\nN1001 G01 X1. F0.2;\n"
	badProgram   = "N1000 G109 L1;\nN1001 G01 X1. F0;\n"
)

func TestNewWorkflow(t *testing.T) {
	w := NewWorkflow(
		adaptermocks.NewMockSourceFSAdapter(t),
		adaptermocks.NewMockReportStore(t),
		controllermocks.NewMockUI(t),
		newMockAnalyzer(t),
	)

	impl, ok := w.(*workflow)
	require.True(t, ok)
	assert.NotEmpty(t, impl.newRunID())
	assert.NotEqual(t, impl.newRunID(), impl.newRunID())
}

func TestWorkflow_Check_Clean(t *testing.T) {
	w, mk := newTestWorkflow(t, NewAnalyzer(m.DefaultLimits()))

	programs := []m.Program{
		{Origin: "a.nc", Hash: "h1", Text: cleanProgram},
		{Origin: "b.nc", Hash: "h2", Text: cleanProgram},
	}

	mk.ui.EXPECT().Start(mock.Anything).Return(nil)
	mk.ui.EXPECT().Close().Return()
	mk.fs.EXPECT().Get([]m.Path{"prog"}, []string{".nc"}).Return(programs, nil)
	mk.ui.EXPECT().DisplayReports(mock.Anything, false).
		Run(func(reports []m.Report, _ bool) {
			require.Len(t, reports, 2)
			assert.Equal(t, m.Path("a.nc"), reports[0].Source)
			assert.Equal(t, m.Path("b.nc"), reports[1].Source)
			assert.Equal(t, "run-1", reports[0].RunID)
			assert.Equal(t, "h2", reports[1].Hash)
			assert.Equal(t, fixedTime, reports[1].AnalyzedAt)
			assert.Empty(t, reports[0].Analysis.Errors)
		}).
		Return(nil)

	err := w.Check(CheckArgs{
		Paths:      []m.Path{"prog"},
		Extensions: []string{".nc"},
		Threads:    2,
		FailOn:     m.SeverityError,
	})
	require.NoError(t, err)
}

func TestWorkflow_Check_FailOn(t *testing.T) {
	tests := []struct {
		name    string
		failOn  m.Severity
		wantErr bool
	}{
		{name: "error threshold", failOn: m.SeverityError, wantErr: true},
		{name: "warning threshold", failOn: m.SeverityWarning, wantErr: true},
		{name: "never", failOn: "", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, mk := newTestWorkflow(t, NewAnalyzer(m.DefaultLimits()))

			mk.ui.EXPECT().Start(mock.Anything).Return(nil)
			mk.ui.EXPECT().Close().Return()
			mk.fs.EXPECT().Get(mock.Anything, mock.Anything).
				Return([]m.Program{{Origin: "bad.nc", Text: badProgram}}, nil)
			mk.ui.EXPECT().DisplayReports(mock.Anything, false).Return(nil)

			err := w.Check(CheckArgs{FailOn: tt.failOn, Threads: 1})
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrDiagnosticsFound))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestWorkflow_Check_InfoThresholdCountsNotes(t *testing.T) {
	w, mk := newTestWorkflow(t, NewAnalyzer(m.DefaultLimits()))

	mk.ui.EXPECT().Start(mock.Anything).Return(nil)
	mk.ui.EXPECT().Close().Return()
	mk.fs.EXPECT().Get(mock.Anything, mock.Anything).
		Return([]m.Program{{Origin: "a.nc", Text: cleanProgram}}, nil)
	mk.ui.EXPECT().DisplayReports(mock.Anything, false).Return(nil)

	err := w.Check(CheckArgs{FailOn: m.SeverityInfo})
	require.ErrorIs(t, err, ErrDiagnosticsFound)
	assert.Contains(t, err.Error(), "1 at or above info")
}

func TestWorkflow_Check_IgnoreDirectives(t *testing.T) {
	w, mk := newTestWorkflow(t, NewAnalyzer(m.DefaultLimits()))

	text := "N1000 G109 L1;\nN1001 G01 X1. F0; (turretlint:ignore error)\n"

	mk.ui.EXPECT().Start(mock.Anything).Return(nil)
	mk.ui.EXPECT().Close().Return()
	mk.fs.EXPECT().Get(mock.Anything, mock.Anything).
		Return([]m.Program{{Origin: "a.nc", Text: text}}, nil)
	mk.ui.EXPECT().DisplayReports(mock.Anything, false).
		Run(func(reports []m.Report, _ bool) {
			assert.Empty(t, reports[0].Analysis.Errors)
		}).
		Return(nil)

	require.NoError(t, w.Check(CheckArgs{FailOn: m.SeverityError}))
}

func TestWorkflow_Check_VerboseShowsProgress(t *testing.T) {
	w, mk := newTestWorkflow(t, nil)

	programs := []m.Program{
		{Origin: "a.nc", Text: "A"},
		{Origin: "b.nc", Text: "B"},
		{Origin: "c.nc", Text: "C"},
	}

	mk.ui.EXPECT().Start(mock.Anything).Return(nil)
	mk.ui.EXPECT().Close().Return()
	mk.fs.EXPECT().Get(mock.Anything, mock.Anything).Return(programs, nil)
	mk.analyzer.On("Analyze", mock.Anything).Return(m.Analysis{TotalLines: 1})
	mk.ui.EXPECT().DisplayProgress(mock.Anything).Return().Times(3)
	mk.ui.EXPECT().DisplayReports(mock.Anything, true).Return(nil)

	require.NoError(t, w.Check(CheckArgs{Threads: 3, Verbose: true, FailOn: m.SeverityError}))
}

func TestWorkflow_Check_SavesReports(t *testing.T) {
	w, mk := newTestWorkflow(t, nil)

	mk.ui.EXPECT().Start(mock.Anything).Return(nil)
	mk.ui.EXPECT().Close().Return()
	mk.fs.EXPECT().Get(mock.Anything, mock.Anything).
		Return([]m.Program{{Origin: "a.nc", Text: "A"}}, nil)
	mk.analyzer.On("Analyze", "A").Return(m.Analysis{TotalLines: 1})
	mk.store.EXPECT().SaveReports(m.Path("out"), mock.MatchedBy(func(reports []m.Report) bool {
		return len(reports) == 1 && reports[0].Source == "a.nc"
	})).Return(nil)
	mk.store.EXPECT().RegenerateIndex(m.Path("out")).Return(nil)
	mk.ui.EXPECT().DisplayReports(mock.Anything, false).Return(nil)

	require.NoError(t, w.Check(CheckArgs{Reports: "out"}))
}

func TestWorkflow_AnalyzeAll_KeepsProgramOrder(t *testing.T) {
	w, _ := newTestWorkflow(t, NewAnalyzer(m.DefaultLimits()))

	programs := make([]m.Program, 0, 20)
	for i := 0; i < 20; i++ {
		programs = append(programs, m.Program{Origin: m.Path(fmt.Sprintf("p%02d.nc", i)), Text: cleanProgram})
	}

	reports, err := w.analyzeAll(programs, 4, false)
	require.NoError(t, err)
	require.Len(t, reports, len(programs))

	for i, r := range reports {
		if r.Source != programs[i].Origin {
			t.Fatalf("analyzeAll()[%d].Source = %s, want %s", i, r.Source, programs[i].Origin)
		}
	}
}

func TestWorkflow_Check_Errors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name    string
		setup   func(mk workflowMocks)
		wantMsg string
	}{
		{
			name: "ui start",
			setup: func(mk workflowMocks) {
				mk.ui.EXPECT().Start(mock.Anything).Return(boom)
			},
			wantMsg: "start ui",
		},
		{
			name: "no programs",
			setup: func(mk workflowMocks) {
				mk.ui.EXPECT().Start(mock.Anything).Return(nil)
				mk.ui.EXPECT().Close().Return()
				mk.fs.EXPECT().Get(mock.Anything, mock.Anything).Return(nil, adapter.ErrNoPrograms)
			},
			wantMsg: "get programs",
		},
		{
			name: "save reports",
			setup: func(mk workflowMocks) {
				mk.ui.EXPECT().Start(mock.Anything).Return(nil)
				mk.ui.EXPECT().Close().Return()
				mk.fs.EXPECT().Get(mock.Anything, mock.Anything).Return([]m.Program{{Origin: "a.nc", Text: "A"}}, nil)
				mk.analyzer.On("Analyze", "A").Return(m.Analysis{})
				mk.store.EXPECT().SaveReports(m.Path("out"), mock.Anything).Return(boom)
			},
			wantMsg: "save reports",
		},
		{
			name: "regenerate index",
			setup: func(mk workflowMocks) {
				mk.ui.EXPECT().Start(mock.Anything).Return(nil)
				mk.ui.EXPECT().Close().Return()
				mk.fs.EXPECT().Get(mock.Anything, mock.Anything).Return([]m.Program{{Origin: "a.nc", Text: "A"}}, nil)
				mk.analyzer.On("Analyze", "A").Return(m.Analysis{})
				mk.store.EXPECT().SaveReports(m.Path("out"), mock.Anything).Return(nil)
				mk.store.EXPECT().RegenerateIndex(m.Path("out")).Return(boom)
			},
			wantMsg: "regenerate index",
		},
		{
			name: "display",
			setup: func(mk workflowMocks) {
				mk.ui.EXPECT().Start(mock.Anything).Return(nil)
				mk.ui.EXPECT().Close().Return()
				mk.fs.EXPECT().Get(mock.Anything, mock.Anything).Return([]m.Program{{Origin: "a.nc", Text: "A"}}, nil)
				mk.analyzer.On("Analyze", "A").Return(m.Analysis{})
				mk.store.EXPECT().SaveReports(m.Path("out"), mock.Anything).Return(nil)
				mk.store.EXPECT().RegenerateIndex(m.Path("out")).Return(nil)
				mk.ui.EXPECT().DisplayReports(mock.Anything, false).Return(boom)
			},
			wantMsg: "display reports",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, mk := newTestWorkflow(t, nil)
			tt.setup(mk)

			err := w.Check(CheckArgs{Reports: "out", FailOn: m.SeverityError})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.False(t, errors.Is(err, ErrDiagnosticsFound))
		})
	}
}

func TestWorkflow_Split(t *testing.T) {
	w, mk := newTestWorkflow(t, NewAnalyzer(m.DefaultLimits()))

	text := "O0001\n(SETUP)\nN0001 G28;\nN1000 G109 L1;\nN1001 G00 X1.;\nN2000 G109 L2;\nN2001 G00 X2.;\n"
	written := map[m.Path]string{}

	mk.ui.EXPECT().Start(mock.Anything).Return(nil)
	mk.ui.EXPECT().Close().Return()
	mk.fs.EXPECT().ReadFile(m.Path("progs/O0001.nc")).Return([]byte(text), nil)
	mk.fs.EXPECT().MkdirAll(m.Path("progs")).Return(nil)
	mk.fs.EXPECT().JoinPath(mock.Anything, mock.Anything).
		RunAndReturn(func(elem ...string) m.Path { return m.Path(elem[0] + "/" + elem[1]) })
	mk.fs.EXPECT().WriteFile(mock.Anything, mock.Anything, os.FileMode(0o600)).
		RunAndReturn(func(path m.Path, content []byte, _ os.FileMode) error {
			written[path] = string(content)
			return nil
		}).Times(3)
	mk.ui.EXPECT().DisplaySplit(m.Path("progs/O0001.nc"), []m.StreamFile{
		{Stream: "common", Path: "progs/O0001.common.nc", Lines: 2},
		{Stream: "upper", Path: "progs/O0001.upper.nc", Lines: 2},
		{Stream: "lower", Path: "progs/O0001.lower.nc", Lines: 2},
	}).Return(nil)

	require.NoError(t, w.Split(SplitArgs{Source: "progs/O0001.nc"}))

	assert.Equal(t, "(SETUP)\nN0001 G28;\n", written["progs/O0001.common.nc"])
	assert.Equal(t, "N1000 G109 L1;\nN1001 G00 X1.;\n", written["progs/O0001.upper.nc"])
	assert.Equal(t, "N2000 G109 L2;\nN2001 G00 X2.;\n", written["progs/O0001.lower.nc"])
}

func TestWorkflow_Split_StdinToOutputDir(t *testing.T) {
	w, mk := newTestWorkflow(t, nil)

	mk.ui.EXPECT().Start(mock.Anything).Return(nil)
	mk.ui.EXPECT().Close().Return()
	mk.fs.EXPECT().ReadFile(m.StdinPath).Return([]byte("N0001 G28;"), nil)
	mk.analyzer.On("Analyze", "N0001 G28;").Return(m.Analysis{
		Common: []m.ClassifiedLine{{Text: "N0001 G28;", Number: 1, Tag: m.TagCommon}},
	})
	mk.fs.EXPECT().MkdirAll(m.Path("out")).Return(nil)
	mk.fs.EXPECT().JoinPath("out", "stdin.common.nc").Return(m.Path("out/stdin.common.nc"))
	mk.fs.EXPECT().JoinPath("out", "stdin.upper.nc").Return(m.Path("out/stdin.upper.nc"))
	mk.fs.EXPECT().JoinPath("out", "stdin.lower.nc").Return(m.Path("out/stdin.lower.nc"))
	mk.fs.EXPECT().WriteFile(m.Path("out/stdin.common.nc"), []byte("N0001 G28;\n"), os.FileMode(0o600)).Return(nil)
	mk.fs.EXPECT().WriteFile(m.Path("out/stdin.upper.nc"), []byte(""), os.FileMode(0o600)).Return(nil)
	mk.fs.EXPECT().WriteFile(m.Path("out/stdin.lower.nc"), []byte(""), os.FileMode(0o600)).Return(nil)
	mk.ui.EXPECT().DisplaySplit(m.StdinPath, mock.Anything).Return(nil)

	require.NoError(t, w.Split(SplitArgs{Source: m.StdinPath, Output: "out"}))
}

func TestWorkflow_Split_Errors(t *testing.T) {
	boom := errors.New("boom")

	t.Run("read", func(t *testing.T) {
		w, mk := newTestWorkflow(t, nil)

		mk.ui.EXPECT().Start(mock.Anything).Return(nil)
		mk.ui.EXPECT().Close().Return()
		mk.fs.EXPECT().ReadFile(m.Path("x.nc")).Return(nil, boom)

		err := w.Split(SplitArgs{Source: "x.nc"})
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "read x.nc")
	})

	t.Run("mkdir", func(t *testing.T) {
		w, mk := newTestWorkflow(t, nil)

		mk.ui.EXPECT().Start(mock.Anything).Return(nil)
		mk.ui.EXPECT().Close().Return()
		mk.fs.EXPECT().ReadFile(m.Path("x.nc")).Return([]byte("A"), nil)
		mk.analyzer.On("Analyze", "A").Return(m.Analysis{})
		mk.fs.EXPECT().MkdirAll(m.Path("out")).Return(boom)

		err := w.Split(SplitArgs{Source: "x.nc", Output: "out"})
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "create output dir")
	})

	t.Run("write", func(t *testing.T) {
		w, mk := newTestWorkflow(t, nil)

		mk.ui.EXPECT().Start(mock.Anything).Return(nil)
		mk.ui.EXPECT().Close().Return()
		mk.fs.EXPECT().ReadFile(m.Path("x.nc")).Return([]byte("A"), nil)
		mk.analyzer.On("Analyze", "A").Return(m.Analysis{})
		mk.fs.EXPECT().MkdirAll(m.Path(".")).Return(nil)
		mk.fs.EXPECT().JoinPath(".", "x.common.nc").Return(m.Path("x.common.nc"))
		mk.fs.EXPECT().WriteFile(m.Path("x.common.nc"), mock.Anything, mock.Anything).Return(boom)

		err := w.Split(SplitArgs{Source: "x.nc"})
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "write x.common.nc")
	})
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		source   m.Path
		wantName string
		wantExt  string
	}{
		{source: "progs/O0001.nc", wantName: "O0001", wantExt: ".nc"},
		{source: "O0002.EIA", wantName: "O0002", wantExt: ".EIA"},
		{source: "O0003", wantName: "O0003", wantExt: ".nc"},
		{source: m.StdinPath, wantName: "stdin", wantExt: ".nc"},
	}

	for _, tt := range tests {
		name, ext := splitName(tt.source)
		if name != tt.wantName || ext != tt.wantExt {
			t.Fatalf("splitName(%q) = %q, %q, want %q, %q", tt.source, name, ext, tt.wantName, tt.wantExt)
		}
	}
}

func TestWorkflow_View(t *testing.T) {
	reports := []m.Report{{Source: "a.nc"}}

	t.Run("displays", func(t *testing.T) {
		w, mk := newTestWorkflow(t, nil)

		mk.store.EXPECT().LoadReports(m.Path("out")).Return(reports, nil)
		mk.ui.EXPECT().Start(mock.Anything).Return(nil)
		mk.ui.EXPECT().Close().Return()
		mk.ui.EXPECT().DisplayReports(reports, true).Return(nil)

		require.NoError(t, w.View(ViewArgs{Reports: "out"}))
	})

	t.Run("empty", func(t *testing.T) {
		w, mk := newTestWorkflow(t, nil)

		mk.store.EXPECT().LoadReports(m.Path("out")).Return(nil, nil)

		err := w.View(ViewArgs{Reports: "out"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no reports found in out")
	})

	t.Run("load error", func(t *testing.T) {
		w, mk := newTestWorkflow(t, nil)

		mk.store.EXPECT().LoadReports(m.Path("out")).Return(nil, errors.New("boom"))

		err := w.View(ViewArgs{Reports: "out"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load reports")
	})
}

func TestCountAtOrAbove(t *testing.T) {
	reports := []m.Report{
		{Analysis: m.Analysis{Errors: []m.Diagnostic{{}}, Warnings: []m.Diagnostic{{}, {}}}},
		{Analysis: m.Analysis{Info: []m.Diagnostic{{}, {}, {}}}},
	}

	tests := []struct {
		threshold m.Severity
		want      int
	}{
		{m.SeverityError, 1},
		{m.SeverityWarning, 3},
		{m.SeverityInfo, 6},
		{"", 0},
	}

	for _, tt := range tests {
		if got := countAtOrAbove(reports, tt.threshold); got != tt.want {
			t.Fatalf("countAtOrAbove(%q) = %d, want %d", tt.threshold, got, tt.want)
		}
	}
}
