package columnar

import (
	"os"

	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/framedoc/framedoc/pkg/table"
)

// readIPC reads an Arrow IPC (Feather) file batch by batch.
func readIPC(path string) (*table.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := ipc.NewFileReader(f, ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	frame, err := frameForSchema(r.Schema())
	if err != nil {
		return nil, err
	}

	for i := 0; i < r.NumRecords(); i++ {
		rec, err := r.Record(i)
		if err != nil {
			return nil, err
		}
		if err := appendRecord(frame, rec); err != nil {
			return nil, err
		}
	}
	return frame, nil
}
