package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Kind mix for the generated stream. The remainder after all probabilities is
// emitted as deliberately broken records so parsers get exercised too.
const (
	probabilityDeposit    = 0.49
	probabilityWithdrawal = 0.49
	probabilityDispute    = 0.005
	probabilityResolve    = 0.004
	probabilityChargeback = 0.001
)

// Known-unreferenced transaction ids, useful for exercising the not-found
// paths downstream.
const (
	invalidTxIDDispute    = 99_999_999
	invalidTxIDResolve    = 88_888_888
	invalidTxIDChargeback = 77_777_777
)

type generator struct {
	random *rand.Rand
	writer *bufio.Writer

	// depositHistory tracks positive deposits per client so disputes can
	// reference real transactions.
	depositHistory map[uint16][]uint32

	// activeDisputes tracks open disputes per client so resolves and
	// chargebacks can land on them.
	activeDisputes map[uint16][]uint32
}

func newGenerator(random *rand.Rand, writer *bufio.Writer) *generator {
	return &generator{
		random:         random,
		writer:         writer,
		depositHistory: map[uint16][]uint32{},
		activeDisputes: map[uint16][]uint32{},
	}
}

func (g *generator) run(records int, clients int) error {
	if _, err := fmt.Fprintln(g.writer, "type,client,tx,amount"); err != nil {
		return err
	}

	for txID := uint32(1); txID <= uint32(records); txID++ {
		clientID := uint16(g.random.Intn(clients) + 1)
		roll := g.random.Float64()

		var err error

		switch {
		case roll < probabilityDeposit:
			err = g.deposit(clientID, txID)
		case roll < probabilityDeposit+probabilityWithdrawal:
			err = g.withdrawal(clientID, txID)
		case roll < probabilityDeposit+probabilityWithdrawal+probabilityDispute:
			err = g.dispute(clientID)
		case roll < probabilityDeposit+probabilityWithdrawal+probabilityDispute+probabilityResolve:
			err = g.resolve(clientID)
		case roll < probabilityDeposit+probabilityWithdrawal+probabilityDispute+probabilityResolve+probabilityChargeback:
			err = g.chargeback(clientID)
		default:
			err = g.invalidRecord(clientID, txID)
		}

		if err != nil {
			return err
		}
	}

	return g.writer.Flush()
}

// randomAmount returns a four-decimal amount below max, negative about 5% of
// the time so validators see hostile input.
func (g *generator) randomAmount(max float64) decimal.Decimal {
	var value float64

	if g.random.Float64() < 0.05 {
		value = -1000.0 + g.random.Float64()*999.9999
	} else {
		value = 0.0001 + g.random.Float64()*(max-0.0001)
	}

	return decimal.NewFromFloat(value).Round(4)
}

func (g *generator) deposit(clientID uint16, txID uint32) error {
	amount := g.randomAmount(10000.0)

	if _, err := fmt.Fprintf(g.writer, "deposit,%d,%d,%s\n", clientID, txID, amount); err != nil {
		return err
	}

	if amount.IsPositive() {
		g.depositHistory[clientID] = append(g.depositHistory[clientID], txID)
	}

	return nil
}

func (g *generator) withdrawal(clientID uint16, txID uint32) error {
	_, err := fmt.Fprintf(g.writer, "withdrawal,%d,%d,%s\n", clientID, txID, g.randomAmount(5000.0))

	return err
}

func (g *generator) dispute(clientID uint16) error {
	history := g.depositHistory[clientID]

	txID := uint32(invalidTxIDDispute)
	if len(history) > 0 && g.random.Float64() < 0.9 {
		txID = history[g.random.Intn(len(history))]
		g.activeDisputes[clientID] = append(g.activeDisputes[clientID], txID)
	}

	_, err := fmt.Fprintf(g.writer, "dispute,%d,%d,\n", clientID, txID)

	return err
}

func (g *generator) resolve(clientID uint16) error {
	txID := g.takeActiveDispute(clientID, invalidTxIDResolve)

	_, err := fmt.Fprintf(g.writer, "resolve,%d,%d,\n", clientID, txID)

	return err
}

func (g *generator) chargeback(clientID uint16) error {
	txID := g.takeActiveDispute(clientID, invalidTxIDChargeback)

	_, err := fmt.Fprintf(g.writer, "chargeback,%d,%d,\n", clientID, txID)

	return err
}

func (g *generator) takeActiveDispute(clientID uint16, fallback uint32) uint32 {
	disputes := g.activeDisputes[clientID]
	if len(disputes) == 0 || g.random.Float64() >= 0.9 {
		return fallback
	}

	index := g.random.Intn(len(disputes))
	txID := disputes[index]
	g.activeDisputes[clientID] = append(disputes[:index], disputes[index+1:]...)

	return txID
}

func (g *generator) invalidRecord(clientID uint16, txID uint32) error {
	broken := []string{
		fmt.Sprintf("deposit,%d,%d,not-a-number", clientID, txID),
		fmt.Sprintf("teleport,%d,%d,1.0", clientID, txID),
		fmt.Sprintf("deposit,%d,%d,1.00001", clientID, txID),
		fmt.Sprintf("withdrawal,%d", clientID),
	}

	_, err := fmt.Fprintln(g.writer, broken[g.random.Intn(len(broken))])

	return err
}

func main() {
	var (
		records int
		clients int
		output  string
		seed    int64
	)

	command := &cobra.Command{
		Use:          "stressgen",
		Short:        "stressgen writes a randomized transaction stream for load testing sluice",
		SilenceUsage: true,
		RunE: func(command *cobra.Command, args []string) error {
			if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
				return err
			}

			file, err := os.Create(output)
			if err != nil {
				return err
			}

			defer file.Close()

			fmt.Fprintf(os.Stderr, "generating %d transactions for %d clients in %s\n", records, clients, output)

			writer := bufio.NewWriter(file)

			return newGenerator(rand.New(rand.NewSource(seed)), writer).run(records, clients)
		},
	}

	command.Flags().IntVar(&records, "records", 1_000_000, "number of records to generate")
	command.Flags().IntVar(&clients, "clients", 65535, "number of distinct client ids")
	command.Flags().StringVar(&output, "output", "samples/stress_test.csv", "output file path")
	command.Flags().Int64Var(&seed, "seed", 42, "random seed, fixed for reproducible streams")

	if err := command.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}
