package jobspec

// Job describes one launchable training entry in the catalog.
//
// A Job is pure configuration: it names the Python training script to run and
// the fixed flag/value pairs that script receives. Nothing here is executed
// until the launcher assembles the final argument vector.
type Job struct {
	// Name uniquely identifies the job within the catalog (e.g. "dnabert-taxonomy").
	Name string `json:"name"`

	// Description explains what the job trains.
	Description string `json:"description,omitempty"`

	// Script is the training script path relative to the script root
	// (e.g. "scripts/finetuning/dnabert_taxonomy.py").
	Script string `json:"script"`

	// Args are the fixed flag/value pairs, in declaration order.
	// Order is preserved into the final command line.
	Args []Pair `json:"args,omitempty"`

	// Resources are the batch-scheduler resource requests for this job.
	// Only used when rendering a submission script; ignored by direct launches.
	Resources Resources `json:"resources,omitempty"`
}

// Pair is a single fixed flag/value argument.
//
// Values may contain placeholders (e.g. "${data}/sequences.fasta.db") that the
// launcher expands against its environment at assembly time.
type Pair struct {
	Flag  string `json:"flag"`
	Value string `json:"value"`
}

// Resources holds batch-scheduler resource requests.
type Resources struct {
	// Time is the wall-clock limit in scheduler syntax (e.g. "3-00:00:00").
	Time string `json:"time,omitempty"`

	// Partition selects the scheduler partition/queue.
	Partition string `json:"partition,omitempty"`

	// GPUs is the number of GPUs requested.
	GPUs int `json:"gpus,omitempty"`

	// MemoryGB is the memory request in gigabytes.
	MemoryGB int `json:"memory_gb,omitempty"`

	// CPUs is the number of CPU cores requested.
	CPUs int `json:"cpus,omitempty"`
}

// Catalog is an ordered collection of jobs keyed by name.
//
// Iteration order follows declaration order in the spec files; Lookup is by
// name. Duplicate names are rejected at load time.
type Catalog struct {
	jobs  []Job
	index map[string]int
}

// NewCatalog builds a catalog from jobs in declaration order.
// Returns an error if two jobs share a name.
func NewCatalog(jobs []Job) (*Catalog, error) {
	c := &Catalog{
		jobs:  make([]Job, 0, len(jobs)),
		index: make(map[string]int, len(jobs)),
	}
	for _, j := range jobs {
		if _, dup := c.index[j.Name]; dup {
			return nil, &ValidationError{
				Field:   "name",
				Message: "duplicate job name: " + j.Name,
				Code:    ErrDuplicateJobName,
			}
		}
		c.index[j.Name] = len(c.jobs)
		c.jobs = append(c.jobs, j)
	}
	return c, nil
}

// Lookup returns the job with the given name.
func (c *Catalog) Lookup(name string) (Job, bool) {
	i, ok := c.index[name]
	if !ok {
		return Job{}, false
	}
	return c.jobs[i], true
}

// Jobs returns all jobs in declaration order.
// The returned slice must not be mutated.
func (c *Catalog) Jobs() []Job {
	return c.jobs
}

// Len returns the number of jobs in the catalog.
func (c *Catalog) Len() int {
	return len(c.jobs)
}
