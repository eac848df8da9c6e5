package cron

import (
	"sort"
	"strings"
	"sync"

	"retail.GO/config"
	"retail.GO/core/registry"
)

// Job is a named task with its default schedule. Run receives the
// arguments given to `cron:start --job`; scheduled runs get none.
type Job struct {
	Name     string
	Schedule string
	Run      func(...string)
}

// EffectiveSchedule is CRON_<NAME> when set, else the registered schedule.
func (j Job) EffectiveSchedule() string {
	return config.CronSchedule(j.Name, j.Schedule)
}

var mu sync.Mutex

// Register adds a cron job under its lower-cased name. Call from init().
// Panics if the registry is locked or the name is taken.
func Register(name string, schedule string, run func(...string)) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCron) {
		panic("cron/registry: locked (register only during init before StartCron)")
	}
	name = strings.ToLower(name)
	jobs := getJobs()
	if _, ok := jobs[name]; ok {
		panic("cron/registry: duplicate job " + name)
	}
	jobs[name] = Job{Name: name, Schedule: schedule, Run: run}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCron, jobs)
}

// Unregister removes a job (for tests).
func Unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron)
	jobs := getJobs()
	delete(jobs, strings.ToLower(name))
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCron, jobs)
}

func getJobs() map[string]Job {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCron); ok && v != nil {
		return v.(map[string]Job)
	}
	return make(map[string]Job)
}

// Jobs returns a copy of all registered jobs and locks the registry.
func Jobs() map[string]Job {
	out := make(map[string]Job)
	for k, v := range getJobs() {
		out[k] = v
	}
	if !registry.GlobalRegistry.IsLocked(registry.KeyRegistryCron) {
		registry.GlobalRegistry.Lock(registry.KeyRegistryCron)
	}
	return out
}

// Lookup finds a job by name, ignoring case.
func Lookup(name string) (Job, bool) {
	j, ok := Jobs()[strings.ToLower(name)]
	return j, ok
}

// Names lists registered job names in order.
func Names() []string {
	jobs := Jobs()
	names := make([]string, 0, len(jobs))
	for name := range jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
