package solomon

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/OR-toolkit/vrptw/pkg/apperror"
)

// Parse reads a Solomon-format instance from r and retains the depot plus
// the first nCustomers customer rows, appending a synthetic end-depot row
// (id NumCustomers+1) that duplicates the depot's attributes. It mirrors
// original_source/benchmarks/loaders/solomon_format.py's
// parse_solomon_format: scan for the "VEHICLE" line and read
// num_vehicles/capacity two lines later, then scan for "CUSTOMER" and
// read fixed 7-field integer rows until a malformed line ends the
// section.
func Parse(r io.Reader, nCustomers int) (*Instance, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInputMalformed, "failed to read solomon instance")
	}

	vehicleIdx, customerIdx := -1, -1
	for i, line := range lines {
		if vehicleIdx == -1 && strings.Contains(line, "VEHICLE") {
			vehicleIdx = i
		}
		if strings.Contains(line, "CUSTOMER") {
			customerIdx = i
			break
		}
	}
	if vehicleIdx == -1 {
		return nil, apperror.New(apperror.CodeInputMalformed, "missing VEHICLE section")
	}
	if customerIdx == -1 {
		return nil, apperror.New(apperror.CodeInputMalformed, "missing CUSTOMER section")
	}
	if vehicleIdx+2 >= len(lines) {
		return nil, apperror.New(apperror.CodeInputMalformed, "VEHICLE section truncated")
	}

	vehicleFields := strings.Fields(lines[vehicleIdx+2])
	if len(vehicleFields) < 2 {
		return nil, apperror.New(apperror.CodeInputMalformed, "malformed VEHICLE data line")
	}
	numVehicles, err := strconv.Atoi(vehicleFields[0])
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInputMalformed, "malformed vehicle count")
	}
	capacity, err := strconv.ParseFloat(vehicleFields[1], 64)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInputMalformed, "malformed vehicle capacity")
	}

	var rows [][7]float64
	for i := customerIdx + 1; i < len(lines); i++ {
		fields := strings.Fields(lines[i])
		if len(fields) != 7 {
			if len(rows) == 0 {
				continue // still inside the section header
			}
			break
		}
		var row [7]float64
		ok := true
		for k, f := range fields {
			v, convErr := strconv.Atoi(f)
			if convErr != nil {
				ok = false
				break
			}
			row[k] = float64(v)
		}
		if !ok {
			if len(rows) == 0 {
				continue
			}
			break
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, apperror.New(apperror.CodeInputMalformed, "no customer rows found")
	}
	if len(rows) < nCustomers+1 {
		return nil, apperror.New(apperror.CodeInputMalformed, "fewer customer rows than requested").
			WithDetails("requested", nCustomers).WithDetails("available", len(rows)-1)
	}

	n := nCustomers + 2
	inst := &Instance{
		NumVehicles:  numVehicles,
		Capacity:     capacity,
		NumCustomers: nCustomers,
		X:            make([]float64, n),
		Y:            make([]float64, n),
		Demand:       make([]float64, n),
		ReadyTime:    make([]float64, n),
		DueDate:      make([]float64, n),
		ServiceTime:  make([]float64, n),
	}

	for i := 0; i <= nCustomers; i++ {
		row := rows[i]
		inst.X[i], inst.Y[i] = row[1], row[2]
		inst.Demand[i] = row[3]
		inst.ReadyTime[i], inst.DueDate[i], inst.ServiceTime[i] = row[4], row[5], row[6]
	}

	end := nCustomers + 1
	inst.X[end], inst.Y[end] = inst.X[0], inst.Y[0]
	inst.Demand[end] = inst.Demand[0]
	inst.ReadyTime[end], inst.DueDate[end], inst.ServiceTime[end] = inst.ReadyTime[0], inst.DueDate[0], inst.ServiceTime[0]

	return inst, nil
}
