package colour

import (
	"context"
	"math"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
)

// minParallelColours is the palette size below which assignment stays on
// the calling goroutine.
const minParallelColours = 4096

// Cluster is the ordered list of colours assigned to one centroid. Order is
// insertion order within a single assignment pass.
type Cluster []Color

// refiner runs k-means over a deduplicated palette.
type refiner struct {
	palette       []Color
	k             int
	maxIterations int
	channels      Channels
	rng           *rand.Rand
	workers       int

	// tick is called once per completed assignment pass.
	tick func()
}

// refinement is the outcome of a refiner run.
type refinement struct {
	Clusters   []Cluster
	Iterations int
	Restarts   int
	Converged  bool
}

// run refines centroids until the clusters stop changing or the iteration
// budget is spent. An empty cluster discards the pass and reseeds randomly;
// the passes already spent still count against the budget.
func (r *refiner) run(ctx context.Context, centroids []Color) (refinement, error) {
	var (
		res                   refinement
		current, previous     []Cluster
		lastGood, lastCounted []Cluster
	)

	for res.Iterations < r.maxIterations {
		if err := ctx.Err(); err != nil {
			return refinement{}, cancelled(err)
		}

		previous = current
		current = r.assign(centroids)
		res.Iterations++
		if r.tick != nil {
			r.tick()
		}
		lastCounted = current

		if hasEmpty(current) {
			res.Restarts++
			current, previous = nil, nil
			centroids = SeedRandom(r.rng, r.palette, r.k)
			continue
		}
		lastGood = current

		if clustersEqual(current, previous) {
			res.Converged = true
			break
		}
		centroids = recenter(current, r.channels)
	}

	if lastGood == nil {
		lastGood = nonEmpty(lastCounted)
	}
	res.Clusters = lastGood
	return res, nil
}

// assign places every palette colour in the cluster of its nearest centroid.
// The first centroid wins ties.
func (r *refiner) assign(centroids []Color) []Cluster {
	nearest := make([]int, len(r.palette))

	if r.workers > 1 && len(r.palette) >= minParallelColours {
		chunk := (len(r.palette) + r.workers - 1) / r.workers
		var g errgroup.Group
		g.SetLimit(r.workers)
		for start := 0; start < len(r.palette); start += chunk {
			end := min(start+chunk, len(r.palette))
			g.Go(func() error {
				for i := start; i < end; i++ {
					nearest[i] = nearestCentroid(r.palette[i], centroids, r.channels)
				}
				return nil
			})
		}
		_ = g.Wait() // workers never fail
	} else {
		for i, c := range r.palette {
			nearest[i] = nearestCentroid(c, centroids, r.channels)
		}
	}

	// Built sequentially so insertion order does not depend on scheduling.
	clusters := make([]Cluster, len(centroids))
	for i, c := range r.palette {
		clusters[nearest[i]] = append(clusters[nearest[i]], c)
	}
	return clusters
}

func nearestCentroid(c Color, centroids []Color, channels Channels) int {
	best := 0
	bestDist := math.MaxInt
	for i, centroid := range centroids {
		if d := channels.squaredDistance(c, centroid); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// recenter averages each cluster into its new centroid.
func recenter(clusters []Cluster, channels Channels) []Color {
	centroids := make([]Color, len(clusters))
	for i, cluster := range clusters {
		centroids[i] = channels.Average(cluster)
	}
	return centroids
}

func hasEmpty(clusters []Cluster) bool {
	for _, c := range clusters {
		if len(c) == 0 {
			return true
		}
	}
	return false
}

func nonEmpty(clusters []Cluster) []Cluster {
	out := make([]Cluster, 0, len(clusters))
	for _, c := range clusters {
		if len(c) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// clustersEqual reports whether both cluster sets hold the same colours in
// the same order. A nil set never matches.
func clustersEqual(a, b []Cluster) bool {
	if a == nil || b == nil || len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j].Value() != b[i][j].Value() {
				return false
			}
		}
	}
	return true
}
