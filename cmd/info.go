package cmd

import (
	"bytes"
	"fmt"
	"runtime"

	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/cpu"
	"github.com/urfave/cli"
)

// SystemInfo prints the CPUs available to the render workers.
func SystemInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	fmt.Fprint(ctx.App.Writer, cpuTable())
	return nil
}

// cpuTable reports the host CPUs, degrading to runtime values when gopsutil cannot read them
func cpuTable() string {
	logical, err := cpu.Counts(true)
	if err != nil {
		logger.Warningf("could not count logical CPUs: %v", err)
		logical = runtime.NumCPU()
	}
	physical, err := cpu.Counts(false)
	if err != nil {
		logger.Warningf("could not count physical CPUs: %v", err)
	}

	model := "unknown"
	var mhz float64
	if infos, err := cpu.Info(); err != nil {
		logger.Warningf("could not query CPU info: %v", err)
	} else if len(infos) > 0 {
		model = infos[0].ModelName
		mhz = infos[0].Mhz
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Property", "Value"})
	table.AppendBulk([][]string{
		{"CPU model", model},
		{"Clock", fmt.Sprintf("%.0f MHz", mhz)},
		{"Physical cores", fmt.Sprintf("%d", physical)},
		{"Logical CPUs", fmt.Sprintf("%d", logical)},
		{"Default workers", fmt.Sprintf("%d", logical)},
		{"GOMAXPROCS", fmt.Sprintf("%d", runtime.GOMAXPROCS(0))},
		{"Go", runtime.Version()},
	})
	table.Render()
	return buf.String()
}
