package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/recomb/internal/analysis"
	"github.com/san-kum/recomb/internal/atomic"
	"github.com/san-kum/recomb/internal/config"
	"github.com/san-kum/recomb/internal/cosmo"
	"github.com/san-kum/recomb/internal/history"
	"github.com/san-kum/recomb/internal/recomb"
	"github.com/san-kum/recomb/internal/store"
	"github.com/san-kum/recomb/internal/tui"
	"github.com/san-kum/recomb/internal/viz"
)

var (
	dataDir string
	// cosmology
	t0     float64
	obh2   float64
	omh2   float64
	okh2   float64
	odeh2  float64
	w0     float64
	wa     float64
	yhe    float64
	nnueff float64
	// energy injection
	pann  float64
	pdec  float64
	alpha float64
	// run options
	modelName  string
	stride     int
	configFile string
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "recomb",
		Short: "cosmological recombination history calculator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".recomb", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "compute a recombination history",
		RunE:  runHistory,
	}
	addParamFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "compute with a live progress view",
		RunE:  runLive,
	}
	addParamFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&t0, "t0", config.DefaultT0, "CMB temperature today [K]")
	cmd.Flags().Float64Var(&obh2, "obh2", config.DefaultOBh2, "baryon density omega_b h^2")
	cmd.Flags().Float64Var(&omh2, "omh2", config.DefaultOMh2, "matter density omega_m h^2")
	cmd.Flags().Float64Var(&okh2, "okh2", 0, "curvature omega_k h^2")
	cmd.Flags().Float64Var(&odeh2, "odeh2", config.DefaultODEh2, "dark energy density omega_de h^2")
	cmd.Flags().Float64Var(&w0, "w0", -1, "dark energy equation of state w0")
	cmd.Flags().Float64Var(&wa, "wa", 0, "dark energy equation of state wa")
	cmd.Flags().Float64Var(&yhe, "yhe", config.DefaultYHe, "helium mass fraction")
	cmd.Flags().Float64Var(&nnueff, "nnu", config.DefaultNNuEff, "effective neutrino species")
	cmd.Flags().Float64Var(&pann, "pann", 0, "dark matter annihilation efficiency")
	cmd.Flags().Float64Var(&pdec, "pdec", 0, "dark matter decay parameter")
	cmd.Flags().Float64Var(&alpha, "alpha", 0, "annihilation efficiency shape parameter")
	cmd.Flags().StringVar(&modelName, "model", "full", "physics model (full|peebles|recfast|emla)")
	cmd.Flags().IntVar(&stride, "stride", config.DefaultStride, "CSV output stride")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig merges preset, config file and explicit flags, in ascending
// precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flagOverrides := map[string]*float64{
		"t0": &cfg.Cosmology.T0, "obh2": &cfg.Cosmology.OBh2, "omh2": &cfg.Cosmology.OMh2,
		"okh2": &cfg.Cosmology.OKh2, "odeh2": &cfg.Cosmology.ODEh2,
		"w0": &cfg.Cosmology.W0, "wa": &cfg.Cosmology.WA,
		"yhe": &cfg.Cosmology.YHe, "nnu": &cfg.Cosmology.NNuEff,
		"pann": &cfg.Injection.PAnn, "pdec": &cfg.Injection.PDec, "alpha": &cfg.Injection.Alpha,
	}
	flagValues := map[string]float64{
		"t0": t0, "obh2": obh2, "omh2": omh2, "okh2": okh2, "odeh2": odeh2,
		"w0": w0, "wa": wa, "yhe": yhe, "nnu": nnueff,
		"pann": pann, "pdec": pdec, "alpha": alpha,
	}
	for name, dst := range flagOverrides {
		if cmd.Flags().Changed(name) {
			*dst = flagValues[name]
		}
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = modelName
	}
	if cmd.Flags().Changed("stride") {
		cfg.Stride = stride
	}

	return cfg, nil
}

func setup(cmd *cobra.Command) (*config.Config, *cosmo.Parameters, *atomic.Provider, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	params, err := cosmo.New(cfg.Input())
	if err != nil {
		return nil, nil, nil, err
	}
	mdl, err := recomb.ParseModel(cfg.Model)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, params, atomic.NewProvider(mdl), nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, params, prov, err := setup(cmd)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("integrating %d grid points, z=%.0f..%.0f...\n", params.NZ, params.ZStart, params.ZEnd)
	start := time.Now()

	hist, err := history.New(params, prov).Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	sum := analysis.Summarize(params, hist)
	runID, err := st.Save(cfg.Model, params.Input, hist, sum, cfg.Stride)
	if err != nil {
		return err
	}

	fmt.Println(viz.SummaryPanel(cfg.Model, hist.Len(), sum, hist.Warnings))
	fmt.Printf("xe(z=1100) = %.4f\n", hist.XeAt(1100))
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	_, params, prov, err := setup(cmd)
	if err != nil {
		return err
	}
	_, err = tui.Run(params, prov)
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tZ_REC\tTAU\tXE_FREEZE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%.5f\t%.3e\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Summary.ZRecombination,
			run.Summary.TauToZ1100,
			run.Summary.FreezeOutXe,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	zs, xes, tms, err := st.LoadHistory(args[0])
	if err != nil {
		return err
	}
	if len(zs) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d (z=%.0f..%.2f)\n\n", len(zs), zs[0], zs[len(zs)-1])

	fmt.Println(asciigraph.Plot(downsample(xes, 160),
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("xe vs grid position (z decreasing)"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(downsample(tms, 160),
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("Tm [K] vs grid position (z decreasing)"),
	))
	return nil
}

func downsample(data []float64, n int) []float64 {
	if len(data) <= n {
		return data
	}
	out := make([]float64, 0, n)
	step := float64(len(data)-1) / float64(n-1)
	for i := 0; i < n; i++ {
		out = append(out, data[int(float64(i)*step)])
	}
	return out
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
