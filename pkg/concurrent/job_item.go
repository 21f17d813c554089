package concurrent

// GridRecord bentuk flat grid buat disimpan di kv. Costs & Blocked row-major.
type GridRecord struct {
	Name      string
	Width     int32
	Height    int32
	Costs     []float64
	Blocked   []bool
	StartX    int32
	StartY    int32
	FinishX   int32
	FinishY   int32
	HasStart  bool
	HasFinish bool
}

type SaveGridJobItem struct {
	KeyStr string
	Record GridRecord
}

type JobI interface {
	SaveGridJobItem
}

type JobFunc[T JobI, G any] func(job T) G
