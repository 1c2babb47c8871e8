package tracker

import (
	"sort"

	"github.com/swdee/go-peoplecount/internal/monitoring"
)

// identity is a single tracked object known to the CentroidTracker
type identity struct {
	id          int
	centroid    Point
	disappeared int
}

// TrackedObject is a snapshot of an identity returned by Objects()
type TrackedObject struct {
	ID          int
	Centroid    Point
	Disappeared int
}

// CentroidTracker assigns stable identities to bounding boxes across frames
// by associating the centroids of new detections with the nearest centroids
// of the objects already being tracked
type CentroidTracker struct {
	cfg Config
	// nextID is the id given to the next registered object
	nextID int
	// objects are the active identities keyed by id
	objects map[int]*identity
}

// NewCentroidTracker returns a tracker using the given configuration
func NewCentroidTracker(cfg Config) (*CentroidTracker, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &CentroidTracker{
		cfg:     cfg,
		objects: make(map[int]*identity),
	}, nil
}

// Config returns the tracker configuration
func (ct *CentroidTracker) Config() Config {
	return ct.cfg
}

// Reset clears all tracked objects. Ids already handed out are not reused.
func (ct *CentroidTracker) Reset() {
	ct.objects = make(map[int]*identity)
}

// Len returns the number of identities currently tracked
func (ct *CentroidTracker) Len() int {
	return len(ct.objects)
}

// Disappeared returns the number of consecutive frames the identity has gone
// unmatched and whether the identity is still tracked
func (ct *CentroidTracker) Disappeared(id int) (int, bool) {
	obj, ok := ct.objects[id]
	if !ok {
		return 0, false
	}
	return obj.disappeared, true
}

// Objects returns a snapshot of the tracked identities in ascending id order
func (ct *CentroidTracker) Objects() []TrackedObject {

	ids := ct.sortedIDs()
	res := make([]TrackedObject, 0, len(ids))

	for _, id := range ids {
		obj := ct.objects[id]
		res = append(res, TrackedObject{
			ID:          obj.id,
			Centroid:    obj.centroid,
			Disappeared: obj.disappeared,
		})
	}

	return res
}

// Update associates the detections of the current frame with the tracked
// identities and returns the centroid of every surviving identity keyed by
// id. It must be called once per processed frame, with an empty slice when
// nothing was detected.
func (ct *CentroidTracker) Update(rects []Rect) map[int]Point {

	centroids := make([]Point, 0, len(rects))

	for _, r := range rects {
		if err := r.Validate(); err != nil {
			monitoring.Debugf("centroid tracker skipping detection: %v", err)
			continue
		}
		centroids = append(centroids, r.Centroid())
	}

	switch {
	case len(ct.objects) == 0:
		for _, c := range centroids {
			ct.register(c)
		}

	case len(centroids) == 0:
		for _, id := range ct.sortedIDs() {
			ct.markDisappeared(id)
		}

	default:
		ct.associate(centroids)
	}

	return ct.snapshot()
}

// associate matches the new centroids against the existing identities
func (ct *CentroidTracker) associate(centroids []Point) {

	ids := ct.sortedIDs()
	existing := make([]Point, len(ids))

	for i, id := range ids {
		existing[i] = ct.objects[id].centroid
	}

	d := DistanceMatrix(existing, centroids)

	var matches []match

	if ct.cfg.Matching == MatchOptimal {
		var err error
		matches, err = optimalAssign(d, ct.cfg.MaxDistance)

		if err != nil {
			monitoring.Logf("optimal assignment failed, using greedy: %v", err)
			matches = greedyAssign(d, ct.cfg.MaxDistance)
		}

	} else {
		matches = greedyAssign(d, ct.cfg.MaxDistance)
	}

	usedRows := make([]bool, len(ids))
	usedCols := make([]bool, len(centroids))

	for _, m := range matches {
		obj := ct.objects[ids[m.row]]
		obj.centroid = centroids[m.col]
		obj.disappeared = 0

		usedRows[m.row] = true
		usedCols[m.col] = true
	}

	for row, used := range usedRows {
		if !used {
			ct.markDisappeared(ids[row])
		}
	}

	for col, used := range usedCols {
		if !used {
			ct.register(centroids[col])
		}
	}
}

// register starts tracking a new identity at the given centroid
func (ct *CentroidTracker) register(c Point) {
	ct.objects[ct.nextID] = &identity{
		id:       ct.nextID,
		centroid: c,
	}
	ct.nextID++
}

// markDisappeared increments the missing frame count of an identity and
// retires it once it exceeds MaxDisappeared
func (ct *CentroidTracker) markDisappeared(id int) {

	obj := ct.objects[id]
	obj.disappeared++

	if obj.disappeared > ct.cfg.MaxDisappeared {
		delete(ct.objects, id)
		monitoring.Debugf("centroid tracker retired id %d", id)
	}
}

// sortedIDs returns the active ids in ascending order, which is also the
// order they were registered in
func (ct *CentroidTracker) sortedIDs() []int {

	ids := make([]int, 0, len(ct.objects))

	for id := range ct.objects {
		ids = append(ids, id)
	}

	sort.Ints(ids)

	return ids
}

// snapshot copies the current id to centroid mapping
func (ct *CentroidTracker) snapshot() map[int]Point {

	res := make(map[int]Point, len(ct.objects))

	for id, obj := range ct.objects {
		res[id] = obj.centroid
	}

	return res
}
