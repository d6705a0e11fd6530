// Package export writes the placement core's inputs and outputs as CSV
// for downstream collaborators.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Phil254/cloud-resource-management-thesis/pkg/core"
)

// UniqueFilename returns path if nothing exists there, otherwise the
// first free variant with a numeric suffix before the extension
// (results.csv, results_1.csv, results_2.csv, ...). Reruns never
// overwrite earlier output.
func UniqueFilename(path string) string {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		if _, err := os.Stat(candidate); errors.Is(err, fs.ErrNotExist) {
			return candidate
		}
	}
}

// WriteDemand exports the generated VM specs and returns the path
// actually written.
func WriteDemand(path string, vms []core.VMSpec) (string, error) {
	path = UniqueFilename(path)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating demand CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"VMID", "CPU", "RAM", "BW", "LENGTH", "DEADLINE"}); err != nil {
		return "", fmt.Errorf("writing demand CSV header: %w", err)
	}
	for _, vm := range vms {
		rec := []string{
			strconv.Itoa(vm.ID),
			formatFloat(vm.CPU),
			formatFloat(vm.RAM),
			formatFloat(vm.Bandwidth),
			formatFloat(vm.Length),
			formatFloat(vm.Deadline),
		}
		if err := w.Write(rec); err != nil {
			return "", fmt.Errorf("writing demand CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing demand CSV: %w", err)
	}
	return path, nil
}

// WritePlacement exports the final VM → host placement together with
// each VM's predicted execution time against its deadline, and returns
// the path actually written. Rows are ordered by VM identifier.
func WritePlacement(path string, placement map[int]int, vms []core.VMSpec, hosts []core.HostSpec, scalingFactor float64) (string, error) {
	path = UniqueFilename(path)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating placement CSV: %w", err)
	}
	defer f.Close()

	byID := make(map[int]core.VMSpec, len(vms))
	ids := make([]int, 0, len(vms))
	for _, vm := range vms {
		byID[vm.ID] = vm
		ids = append(ids, vm.ID)
	}
	sort.Ints(ids)

	w := csv.NewWriter(f)
	if err := w.Write([]string{"VMID", "HOST", "PREDICTED_EXEC", "DEADLINE", "WITHIN_DEADLINE"}); err != nil {
		return "", fmt.Errorf("writing placement CSV header: %w", err)
	}
	for _, id := range ids {
		vm := byID[id]
		h := placement[id]
		predicted := vm.Length / hosts[h].CPU * scalingFactor
		rec := []string{
			strconv.Itoa(id),
			strconv.Itoa(h),
			formatFloat(predicted),
			formatFloat(vm.Deadline),
			strconv.FormatBool(predicted <= vm.Deadline),
		}
		if err := w.Write(rec); err != nil {
			return "", fmt.Errorf("writing placement CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing placement CSV: %w", err)
	}
	return path, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
