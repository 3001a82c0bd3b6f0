package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// File is the on-disk configuration. Zero or missing fields keep the
// current setting.
type File struct {
	Mesh  MeshFile  `yaml:"mesh"`
	World WorldFile `yaml:"world"`
}

// MeshFile configures the mesh pipeline.
type MeshFile struct {
	Workers            int      `yaml:"workers"`
	QueueSize          int      `yaml:"queue_size"`
	InitialBufferBytes int      `yaml:"initial_buffer_bytes"`
	RenderData         *bool    `yaml:"render_data,omitempty"`
	SnapshotTTL        Duration `yaml:"snapshot_ttl"`
}

// WorldFile configures the synthetic world.
type WorldFile struct {
	Seed   *int64 `yaml:"seed,omitempty"`
	Radius *int   `yaml:"radius,omitempty"`
	Debug  bool   `yaml:"debug"`
	NoSky  bool   `yaml:"no_sky"`
}

// Duration is a time.Duration written as a Go duration string.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Parse decodes a configuration document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("could not unmarshal config yaml: %w", err)
	}
	return &f, nil
}

// Load reads a configuration file and applies it to the global settings.
func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return err
	}
	f.Apply()
	log.Printf("config: loaded %s (workers=%d, queue=%d, buffer=%dB, render data=%v)",
		path, GetWorkers(), GetQueueSize(), GetInitialBufferBytes(), GetRenderDataSupported())
	return nil
}

// Apply copies every set field into the global settings.
func (f *File) Apply() {
	if f.Mesh.Workers > 0 {
		SetWorkers(f.Mesh.Workers)
	}
	if f.Mesh.QueueSize > 0 {
		SetQueueSize(f.Mesh.QueueSize)
	}
	if f.Mesh.InitialBufferBytes > 0 {
		SetInitialBufferBytes(f.Mesh.InitialBufferBytes)
	}
	if f.Mesh.RenderData != nil {
		SetRenderDataSupported(*f.Mesh.RenderData)
	}
	if f.Mesh.SnapshotTTL > 0 {
		SetSnapshotTTL(time.Duration(f.Mesh.SnapshotTTL))
	}
	if f.World.Seed != nil {
		SetSeed(*f.World.Seed)
	}
	if f.World.Radius != nil {
		SetRadius(*f.World.Radius)
	}
	SetDebugWorld(f.World.Debug)
	SetNoSky(f.World.NoSky)
}
