package config

// Millfile represents the structure of the mill.yaml pipeline file.
// Tasks are a list, not a map: file order is registration order, which the
// planner uses as its deterministic tie-break.
type Millfile struct {
	Version  string      `yaml:"version"`
	Tracking TrackingDTO `yaml:"tracking"`
	Storage  StorageDTO  `yaml:"storage"`
	Tasks    []TaskDTO   `yaml:"tasks"`
}

// TaskDTO represents a task definition in the pipeline file.
type TaskDTO struct {
	Name       string            `yaml:"name"`
	Run        []string          `yaml:"run"`
	Config     map[string]string `yaml:"config"`
	DependsOn  []string          `yaml:"dependsOn"`
	BestEffort bool              `yaml:"bestEffort"`
	Artifacts  []string          `yaml:"artifacts"`
}

// TrackingDTO configures the experiment-tracking collaborator.
type TrackingDTO struct {
	URL        string `yaml:"url"`
	Experiment string `yaml:"experiment"`
	Token      string `yaml:"token"`
	TimeoutSec int    `yaml:"timeoutSec"`
}

// StorageDTO configures the S3-compatible artifact store.
type StorageDTO struct {
	Endpoint       string `yaml:"endpoint"`
	Region         string `yaml:"region"`
	Bucket         string `yaml:"bucket"`
	ForcePathStyle bool   `yaml:"forcePathStyle"`
}
