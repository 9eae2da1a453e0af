package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Wave is one entry of the wave schedule. It is active for elapsed times in
// [Start, Start+Duration).
type Wave struct {
	Index    int     `yaml:"-"`
	Start    float64 `yaml:"start"`
	Duration float64 `yaml:"duration"`
	Enemies  int     `yaml:"enemies"`
}

// WaveTable answers which wave is active at a given elapsed time.
type WaveTable struct {
	waves []Wave
}

// LoadWaveTable loads waves.yaml.
func LoadWaveTable(path string) (*WaveTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wave list: %w", err)
	}
	return ParseWaveTable(raw)
}

func ParseWaveTable(raw []byte) (*WaveTable, error) {
	var file struct {
		Waves []Wave `yaml:"waves"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse wave list: %w", err)
	}
	t := &WaveTable{waves: file.Waves}
	for i := range t.waves {
		w := &t.waves[i]
		w.Index = i + 1
		if w.Duration <= 0 {
			return nil, fmt.Errorf("wave %d: duration must be positive", w.Index)
		}
		if w.Enemies < 0 {
			return nil, fmt.Errorf("wave %d: negative enemy count", w.Index)
		}
	}
	return t, nil
}

// WaveAt returns the first wave active at elapsed seconds.
func (t *WaveTable) WaveAt(elapsed float64) (Wave, bool) {
	for _, w := range t.waves {
		if elapsed >= w.Start && elapsed < w.Start+w.Duration {
			return w, true
		}
	}
	return Wave{}, false
}

// Count returns the number of waves loaded.
func (t *WaveTable) Count() int {
	return len(t.waves)
}

// End returns the time the last wave finishes, 0 for an empty table.
func (t *WaveTable) End() float64 {
	var end float64
	for _, w := range t.waves {
		if e := w.Start + w.Duration; e > end {
			end = e
		}
	}
	return end
}

// Exhausted reports whether no wave can start at or after elapsed.
func (t *WaveTable) Exhausted(elapsed float64) bool {
	return elapsed >= t.End()
}
