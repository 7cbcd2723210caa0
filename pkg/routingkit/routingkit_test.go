package routingkit

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/orderkit/pkg/errors"
)

// triangle returns a small valid network: 0→1, 0→2, 1→2, 2→0.
func triangle() *Network {
	return &Network{
		FirstOut:   []uint32{0, 2, 3, 4},
		Head:       []uint32{1, 2, 2, 0},
		TravelTime: []uint32{10, 20, 5, 7},
		Latitude:   []float32{52.5, 52.6, 52.55},
		Longitude:  []float32{13.3, 13.41, 13.35},
	}
}

func TestNetworkCounts(t *testing.T) {
	n := triangle()
	if n.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", n.NodeCount())
	}
	if n.EdgeCount() != 4 {
		t.Errorf("EdgeCount = %d, want 4", n.EdgeCount())
	}

	empty := &Network{}
	if empty.NodeCount() != 0 {
		t.Errorf("empty NodeCount = %d, want 0", empty.NodeCount())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(n *Network)
		ok     bool
	}{
		{"valid", func(n *Network) {}, true},
		{"empty first_out", func(n *Network) { n.FirstOut = nil }, false},
		{"first_out not starting at 0", func(n *Network) { n.FirstOut[0] = 1 }, false},
		{"first_out decreasing", func(n *Network) { n.FirstOut[2] = 1 }, false},
		{"bad sentinel", func(n *Network) { n.FirstOut[3] = 9 }, false},
		{"travel_time length mismatch", func(n *Network) { n.TravelTime = n.TravelTime[:2] }, false},
		{"coordinate length mismatch", func(n *Network) { n.Latitude = n.Latitude[:1] }, false},
		{"head out of range", func(n *Network) { n.Head[0] = 3 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := triangle()
			tt.mutate(n)
			err := n.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate: unexpected error %v", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("Validate should fail")
				}
				if !errors.Is(err, errors.ErrCodeInvalidNetwork) {
					t.Errorf("error code = %s, want INVALID_NETWORK", errors.GetCode(err))
				}
			}
		})
	}
}

func TestWriteVectors(t *testing.T) {
	dir := t.TempDir()
	n := triangle()

	if err := n.WriteVectors(dir); err != nil {
		t.Fatalf("WriteVectors: %v", err)
	}

	want := map[string]string{
		AttrHead:       "1\n2\n2\n0\n",
		AttrTravelTime: "10\n20\n5\n7\n",
		AttrFirstOut:   "0\n2\n3\n4\n",
		AttrLatitude:   "52.5\n52.6\n52.55\n",
		AttrLongitude:  "13.3\n13.41\n13.35\n",
	}
	for name, content := range want {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if string(data) != content {
			t.Errorf("%s = %q, want %q", name, data, content)
		}
	}
}

func TestWriteVectorsRejectsInvalidNetwork(t *testing.T) {
	n := triangle()
	n.Head[0] = 99
	if err := n.WriteVectors(t.TempDir()); !errors.Is(err, errors.ErrCodeInvalidNetwork) {
		t.Errorf("error = %v, want INVALID_NETWORK", err)
	}
}

func TestReadOrdering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "europe")
	if err := os.WriteFile(path, []byte("2\n3\n1\n0\n\n"), 0644); err != nil {
		t.Fatal(err)
	}

	order, err := ReadOrdering(path)
	if err != nil {
		t.Fatalf("ReadOrdering: %v", err)
	}
	if want := []uint32{2, 3, 1, 0}; !reflect.DeepEqual(order, want) {
		t.Errorf("ReadOrdering = %v, want %v", order, want)
	}
}

func TestReadOrderingErrors(t *testing.T) {
	dir := t.TempDir()

	// Missing file
	if _, err := ReadOrdering(filepath.Join(dir, "absent")); !errors.Is(err, errors.ErrCodeMissingInput) {
		t.Errorf("missing file: error = %v, want MISSING_INPUT", err)
	}

	// Malformed line
	path := filepath.Join(dir, "bad")
	if err := os.WriteFile(path, []byte("1\nnot-a-number\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := ReadOrdering(path)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("malformed line: error = %v, want INVALID_INPUT", err)
	}

	// Negative values do not fit a node id
	path = filepath.Join(dir, "negative")
	if err := os.WriteFile(path, []byte("-1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadOrdering(path); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative id: error = %v, want INVALID_INPUT", err)
	}
}

func TestDefaultAttributes(t *testing.T) {
	want := []string{"head", "travel_time", "first_out", "latitude", "longitude"}
	if got := DefaultAttributes(); !reflect.DeepEqual(got, want) {
		t.Errorf("DefaultAttributes = %v, want %v", got, want)
	}

	// Callers may mutate the returned slice without affecting later calls.
	got := DefaultAttributes()
	got[0] = "mutated"
	if DefaultAttributes()[0] != "head" {
		t.Error("DefaultAttributes should return a fresh slice")
	}
}
