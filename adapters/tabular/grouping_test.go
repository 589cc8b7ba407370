package tabular

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cmplot/domain/core"
)

const irisCSV = `Species,PetalLength,PetalWidth,Note
setosa,1.4,0.2,first
setosa,1.3,0.2,
virginica,6.0,2.5,big
virginica,5.1,1.9,
versicolor,4.7,1.4,mid
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestColumns(t *testing.T) {
	reader := NewDataReader(writeCSV(t, irisCSV))
	cols, err := reader.Columns(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Species", "PetalLength", "PetalWidth", "Note"}
	if len(cols) != len(want) {
		t.Fatalf("columns = %v, want %v", cols, want)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("column %d = %q, want %q", i, cols[i], want[i])
		}
	}
}

func TestGroups_FirstAppearanceOrder(t *testing.T) {
	reader := NewDataReader(writeCSV(t, irisCSV))
	groups, err := reader.Groups(context.Background(), []string{"Species"}, []string{"PetalLength"})
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	wantLabels := []string{"setosa", "virginica", "versicolor"}
	for i, g := range groups {
		if g.Label() != wantLabels[i] {
			t.Errorf("group %d label = %q, want %q", i, g.Label(), wantLabels[i])
		}
		if g.Variable != "PetalLength" {
			t.Errorf("group %d variable = %q", i, g.Variable)
		}
	}
	if got := groups[0].Sample.Len(); got != 2 {
		t.Errorf("setosa sample size = %d, want 2", got)
	}
}

func TestGroups_DefaultYColsAreNumeric(t *testing.T) {
	reader := NewDataReader(writeCSV(t, irisCSV))
	groups, err := reader.Groups(context.Background(), []string{"Species"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	// 3 species x 2 numeric columns; Note never parses
	if len(groups) != 6 {
		t.Fatalf("got %d groups, want 6", len(groups))
	}
	for _, g := range groups {
		if g.Variable == "Note" {
			t.Errorf("non-numeric column %q picked as ycol", g.Variable)
		}
	}
}

func TestGroups_MultipleXColsJoinLabels(t *testing.T) {
	csv := "Region,Season,Yield\nnorth,wet,1.0\nnorth,dry,2.0\nsouth,wet,3.0\n"
	reader := NewDataReader(writeCSV(t, csv))
	groups, err := reader.Groups(context.Background(), []string{"Region", "Season"}, []string{"Yield"})
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	if got := groups[0].Label(); got != "north&wet" {
		t.Errorf("label = %q, want %q", got, "north&wet")
	}
	if got := groups[0].SubLabel(); got != "wet" {
		t.Errorf("sublabel = %q, want %q", got, "wet")
	}
}

func TestGroups_Validation(t *testing.T) {
	reader := NewDataReader(writeCSV(t, irisCSV))
	ctx := context.Background()

	if _, err := reader.Groups(ctx, nil, nil); !core.IsInputError(err) {
		t.Errorf("missing xcol: got %v, want input error", err)
	}
	if _, err := reader.Groups(ctx, []string{"Nope"}, nil); !core.IsOptionError(err) {
		t.Errorf("unknown xcol: got %v, want option error", err)
	}
	if _, err := reader.Groups(ctx, []string{"Species"}, []string{"Nope"}); !core.IsOptionError(err) {
		t.Errorf("unknown ycol: got %v, want option error", err)
	}
	if _, err := reader.Groups(ctx, []string{"Species"}, []string{"Species"}); !core.IsOptionError(err) {
		t.Errorf("ycol overlapping xcol: got %v, want option error", err)
	}
}

func TestGroups_SkipsEmptyCombination(t *testing.T) {
	csv := "Kind,Val\na,1.5\na,2.5\nb,not-a-number\n"
	reader := NewDataReader(writeCSV(t, csv))
	groups, err := reader.Groups(context.Background(), []string{"Kind"}, []string{"Val"})
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1 (empty combination dropped)", len(groups))
	}
	if groups[0].Label() != "a" {
		t.Errorf("surviving group = %q, want %q", groups[0].Label(), "a")
	}
}

func TestGroups_AllEmptyFails(t *testing.T) {
	csv := "Kind,Val\na,x\nb,y\n"
	reader := NewDataReader(writeCSV(t, csv))
	_, err := reader.Groups(context.Background(), []string{"Kind"}, []string{"Val"})
	if !core.IsInputError(err) {
		t.Errorf("got %v, want input error for an all-empty dataset", err)
	}
}

func TestReadTable_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.parquet")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewDataReader(path).ReadTable(); err == nil {
		t.Error("expected an error for an unsupported file type")
	}
}

func TestDefaultTitle(t *testing.T) {
	got := DefaultTitle([]string{"Region", "Season"}, []string{"Yield", "Loss"})
	if got != "Region & Season ~ Yield, Loss" {
		t.Errorf("title = %q", got)
	}
}
