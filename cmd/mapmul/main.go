// Command mapmul is the host-side harness for the map-indirected matmul
// kernels: it creates the three stores, populates the operands, runs a
// kernel variant and inspects the result store.
package main

import (
	goflag "flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/LynnColeArt/mapmul"
)

var (
	flagVariant string
	flagSeed    int64
	flagInputA  string
	flagInputB  string
	flagDump    bool
)

var rootCmd = &cobra.Command{
	Use:           "mapmul",
	Short:         "Run map-indirected matrix multiplication kernels",
	Version:       versionString(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func versionString() string {
	v, sum := mapmul.Version()
	if v == "" {
		return "devel"
	}
	return fmt.Sprintf("%s (%s)", v, sum)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one kernel invocation and report timing",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, isFloat, err := variantConfig(flagVariant)
		if err != nil {
			return err
		}
		if isFloat {
			return runVariant[float32](cfg, randomFloat32, parseFloat32)
		}
		return runVariant[int32](cfg, randomInt32, parseInt32)
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run blocked and reference kernels on the same input and compare",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, isFloat, err := variantConfig(flagVariant)
		if err != nil {
			return err
		}
		if cfg.Strategy != mapmul.StrategyBlocked {
			return errors.Errorf("variant %q has no blocked kernel to compare", flagVariant)
		}
		if isFloat {
			return compareVariant[float32](cfg, randomFloat32, verifyFloat32)
		}
		return compareVariant[int32](cfg, randomInt32, verifyInt32)
	},
}

func init() {
	klog.InitFlags(nil)
	rootCmd.PersistentFlags().AddGoFlagSet(goflag.CommandLine)
	rootCmd.PersistentFlags().StringVar(&flagVariant, "variant", "blocked16",
		"kernel variant: small4, blocked16 or huge32")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 1,
		"seed for randomly generated operands")
	runCmd.Flags().StringVar(&flagInputA, "input-a", "",
		"file with whitespace-separated operand A elements (row-major)")
	runCmd.Flags().StringVar(&flagInputB, "input-b", "",
		"file with whitespace-separated operand B elements (row-major)")
	runCmd.Flags().BoolVar(&flagDump, "dump", false,
		"print the result matrix after the run")
	rootCmd.AddCommand(runCmd, compareCmd)
}

func main() {
	defer klog.Flush()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mapmul: %v\n", err)
		os.Exit(1)
	}
}

func variantConfig(name string) (mapmul.Config, bool, error) {
	switch name {
	case "small4":
		return mapmul.Small4Config, true, nil
	case "blocked16":
		return mapmul.Blocked16Config, false, nil
	case "huge32":
		return mapmul.Huge32Config, false, nil
	default:
		return mapmul.Config{}, false, errors.Errorf("unknown variant %q", name)
	}
}

// runVariant builds the store set, fills the operands, runs one invocation
// under measurement and optionally dumps the result store.
func runVariant[T mapmul.Scalar](cfg mapmul.Config, random func(*rand.Rand) T, parse func(string) (T, error)) error {
	elems := cfg.Elems()
	mapA := mapmul.NewArrayMap[T](uint32(elems))
	mapB := mapmul.NewArrayMap[T](uint32(elems))
	mapRes := mapmul.NewArrayMap[T](uint32(elems))

	if err := fillOperand(mapA, elems, flagInputA, flagSeed, random, parse); err != nil {
		return err
	}
	if err := fillOperand(mapB, elems, flagInputB, flagSeed+1, random, parse); err != nil {
		return err
	}

	prog, err := mapmul.NewProgram(cfg, mapmul.NewMapTable[T](mapA, mapB, mapRes))
	if err != nil {
		return err
	}

	stats, err := mapmul.MeasureInvocation(flagVariant, prog.Run)
	if err != nil {
		return err
	}
	klog.Infof("invocation complete: %s", stats)

	if flagDump {
		return dumpMatrix[T](mapRes, cfg.Dim)
	}
	return nil
}

// compareVariant runs the blocked kernel and the reference kernel over
// identical operands and verifies the two result stores agree.
func compareVariant[T mapmul.Scalar](cfg mapmul.Config, random func(*rand.Rand) T, verify func(blocked, reference []T) error) error {
	elems := cfg.Elems()
	mapA := mapmul.NewArrayMap[T](uint32(elems))
	mapB := mapmul.NewArrayMap[T](uint32(elems))
	if err := fillOperand(mapA, elems, "", flagSeed, random, nil); err != nil {
		return err
	}
	if err := fillOperand(mapB, elems, "", flagSeed+1, random, nil); err != nil {
		return err
	}

	refCfg := cfg
	refCfg.Strategy = mapmul.StrategyReference

	results := make(map[string][]T, 2)
	for _, v := range []struct {
		name string
		cfg  mapmul.Config
	}{
		{"blocked", cfg},
		{"reference", refCfg},
	} {
		mapRes := mapmul.NewArrayMap[T](uint32(elems))
		prog, err := mapmul.NewProgram(v.cfg, mapmul.NewMapTable[T](mapA, mapB, mapRes))
		if err != nil {
			return err
		}
		stats, err := mapmul.MeasureInvocation(v.name, prog.Run)
		if err != nil {
			return err
		}
		klog.Infof("%s", stats)
		out, err := readMatrix[T](mapRes, elems)
		if err != nil {
			return err
		}
		results[v.name] = out
	}

	if err := verify(results["blocked"], results["reference"]); err != nil {
		return err
	}
	klog.Infof("blocked and reference kernels agree on %d elements", elems)
	return nil
}

// fillOperand populates a store either from a file or with seeded random
// values. A nil parse function forces random fill.
func fillOperand[T mapmul.Scalar](m mapmul.Map[T], elems int, path string, seed int64, random func(*rand.Rand) T, parse func(string) (T, error)) error {
	if path != "" && parse != nil {
		vals, err := loadMatrixFile(path, elems, parse)
		if err != nil {
			return err
		}
		for i, v := range vals {
			if err := m.Update(uint32(i), v, mapmul.UpdateAny); err != nil {
				return err
			}
		}
		return nil
	}

	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < elems; i++ {
		if err := m.Update(uint32(i), random(rng), mapmul.UpdateAny); err != nil {
			return err
		}
	}
	return nil
}

// loadMatrixFile reads exactly elems whitespace-separated values from path.
func loadMatrixFile[T mapmul.Scalar](path string, elems int, parse func(string) (T, error)) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading operand file %s", path)
	}
	fields := strings.Fields(string(data))
	if len(fields) != elems {
		return nil, errors.Errorf("operand file %s has %d elements, want %d", path, len(fields), elems)
	}
	vals := make([]T, elems)
	for i, f := range fields {
		v, err := parse(f)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing element %d of %s", i, path)
		}
		vals[i] = v
	}
	return vals, nil
}

func readMatrix[T mapmul.Scalar](m mapmul.Map[T], elems int) ([]T, error) {
	out := make([]T, elems)
	for i := range out {
		v, err := m.Lookup(uint32(i))
		if err != nil {
			return nil, err
		}
		out[i] = *v
	}
	return out, nil
}

func dumpMatrix[T mapmul.Scalar](m mapmul.Map[T], n int) error {
	vals, err := readMatrix[T](m, n*n)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		row := make([]string, n)
		for j := 0; j < n; j++ {
			row[j] = fmt.Sprintf("%v", vals[i*n+j])
		}
		fmt.Println(strings.Join(row, " "))
	}
	return nil
}

func randomInt32(rng *rand.Rand) int32 {
	return rng.Int31n(201) - 100
}

func randomFloat32(rng *rand.Rand) float32 {
	return rng.Float32()*2 - 1
}

func parseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	return int32(v), err
}

func parseFloat32(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	return float32(v), err
}

func verifyInt32(blocked, reference []int32) error {
	for i := range blocked {
		if blocked[i] != reference[i] {
			return errors.Errorf("element %d: blocked %d != reference %d",
				i, blocked[i], reference[i])
		}
	}
	return nil
}

func verifyFloat32(blocked, reference []float32) error {
	return mapmul.VerifyFloat32(reference, blocked, mapmul.DefaultTolerance())
}
