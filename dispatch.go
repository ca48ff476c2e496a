package genmapgrid

import (
	"sync/atomic"

	"github.com/Flokey82/genmapgrid/gridmesh"
)

// LayersRequest asks the dispatcher for terrain layers.
type LayersRequest struct {
	RequestID uint64
	CacheKey  string
	Options   GenerationOptions
	Fidelity  Fidelity
}

// LayersResponse carries the generated (or cached) layers back to the
// consumer together with the id of the request that produced them.
type LayersResponse struct {
	RequestID uint64
	CacheKey  string
	CacheHit  bool
	Layers    *TerrainLayers
}

// MeshInput bundles everything the mesh builder needs. LayersKey
// identifies the source layers; meshes built from different layer
// generations (climate presets, fidelities) must never share a cache
// entry even when every viewport parameter matches.
type MeshInput struct {
	Layers         *TerrainLayers
	LayersKey      string
	Seed           string
	ViewportWidth  float64
	ViewportHeight float64
	SeaLevel       float64
	Quality        gridmesh.Quality
}

// MeshRequest asks the dispatcher for a render mesh.
type MeshRequest struct {
	RequestID uint64
	CacheKey  string
	Input     MeshInput
}

// MeshResponse carries the built (or cached) mesh back to the consumer.
type MeshResponse struct {
	RequestID uint64
	CacheKey  string
	CacheHit  bool
	Mesh      *gridmesh.Mesh
}

// DispatcherConfig configures the dispatcher and its caches.
type DispatcherConfig struct {
	LayerCacheSize int  // bounded LRU capacity for layers
	MeshCacheSize  int  // bounded LRU capacity for meshes
	Synchronous    bool // compute in the caller instead of a worker
}

// NewDispatcherConfig returns a config with default values.
func NewDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		LayerCacheSize: 24,
		MeshCacheSize:  20,
	}
}

type dispatchJob struct {
	layers    *LayersRequest
	layersOut chan<- LayersResponse
	mesh      *MeshRequest
	meshOut   chan<- MeshResponse
}

// Dispatcher hands generation and meshing work to a single background
// worker goroutine that owns both LRU caches. When constructed
// synchronously (or when no background execution is wanted) the same
// code runs inline in the caller, producing identical output.
//
// Request ids increase monotonically per kind. A consumer should discard
// any response whose id is not the latest it issued (last-request-wins);
// superseded requests are not cancelled mid-flight, their results are
// simply dropped on arrival.
type Dispatcher struct {
	layerCache *Cache[*TerrainLayers]
	meshCache  *Cache[*gridmesh.Mesh]

	jobs chan dispatchJob
	done chan struct{}

	lastLayersID atomic.Uint64
	lastMeshID   atomic.Uint64
}

// NewDispatcher returns a dispatcher. Unless cfg.Synchronous is set, a
// background worker goroutine is started; call Close to stop it.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	d := &Dispatcher{
		layerCache: NewCache[*TerrainLayers](cfg.LayerCacheSize),
		meshCache:  NewCache[*gridmesh.Mesh](cfg.MeshCacheSize),
	}
	if !cfg.Synchronous {
		d.jobs = make(chan dispatchJob, 16)
		d.done = make(chan struct{})
		go d.worker()
	}
	return d
}

// RequestLayers issues a generation request and returns its id together
// with the channel the response will be delivered on. The channel is
// buffered; the response can be received at any time.
func (d *Dispatcher) RequestLayers(o GenerationOptions, fidelity Fidelity) (uint64, <-chan LayersResponse) {
	id := d.lastLayersID.Add(1)
	req := LayersRequest{
		RequestID: id,
		CacheKey:  layersCacheKey(o, fidelity),
		Options:   o.Normalized(),
		Fidelity:  fidelity,
	}
	out := make(chan LayersResponse, 1)
	if d.jobs == nil {
		// Synchronous fallback: run in the caller.
		out <- d.handleLayers(req)
		return id, out
	}
	d.jobs <- dispatchJob{layers: &req, layersOut: out}
	return id, out
}

// RequestMesh issues a mesh build request, mirroring RequestLayers.
func (d *Dispatcher) RequestMesh(in MeshInput) (uint64, <-chan MeshResponse) {
	id := d.lastMeshID.Add(1)
	req := MeshRequest{
		RequestID: id,
		CacheKey:  meshCacheKey(in),
		Input:     in,
	}
	out := make(chan MeshResponse, 1)
	if d.jobs == nil {
		out <- d.handleMesh(req)
		return id, out
	}
	d.jobs <- dispatchJob{mesh: &req, meshOut: out}
	return id, out
}

// FreshLayers reports whether the response belongs to the most recently
// issued layers request. Stale responses should be discarded.
func (d *Dispatcher) FreshLayers(resp LayersResponse) bool {
	return resp.RequestID == d.lastLayersID.Load()
}

// FreshMesh reports whether the response belongs to the most recently
// issued mesh request.
func (d *Dispatcher) FreshMesh(resp MeshResponse) bool {
	return resp.RequestID == d.lastMeshID.Load()
}

// Close stops the background worker, if any. Pending requests are
// served before the worker exits.
func (d *Dispatcher) Close() {
	if d.jobs == nil {
		return
	}
	close(d.jobs)
	<-d.done
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for job := range d.jobs {
		if job.layers != nil {
			job.layersOut <- d.handleLayers(*job.layers)
		}
		if job.mesh != nil {
			job.meshOut <- d.handleMesh(*job.mesh)
		}
	}
}

func (d *Dispatcher) handleLayers(req LayersRequest) LayersResponse {
	if l, ok := d.layerCache.Get(req.CacheKey); ok {
		return LayersResponse{RequestID: req.RequestID, CacheKey: req.CacheKey, CacheHit: true, Layers: l}
	}
	l := generateLayers(req.Options, req.Fidelity)
	d.layerCache.Put(req.CacheKey, l)
	return LayersResponse{RequestID: req.RequestID, CacheKey: req.CacheKey, Layers: l}
}

func (d *Dispatcher) handleMesh(req MeshRequest) MeshResponse {
	if m, ok := d.meshCache.Get(req.CacheKey); ok {
		return MeshResponse{RequestID: req.RequestID, CacheKey: req.CacheKey, CacheHit: true, Mesh: m}
	}
	in := req.Input
	m := gridmesh.BuildMesh(in.Layers, in.Seed, in.ViewportWidth, in.ViewportHeight, in.SeaLevel, in.Quality)
	d.meshCache.Put(req.CacheKey, m)
	return MeshResponse{RequestID: req.RequestID, CacheKey: req.CacheKey, Mesh: m}
}
