package bootstrap

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	libLog "github.com/LerianStudio/lib-commons/v2/commons/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CedrusPay/sluice/internal/adapters/csv"
	"github.com/CedrusPay/sluice/internal/adapters/storage"
	"github.com/CedrusPay/sluice/internal/services"
)

func runPipeline(t *testing.T, input string, config services.Config) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(input), 0o600))

	repository := storage.NewAccountInMemoryRepository()

	var output bytes.Buffer

	service := &Service{
		Engine:     services.NewEngine(repository, config),
		Repository: repository,
		Source:     csv.NewTransactionSource(path),
		Logger:     &libLog.NoneLogger{},
		Output:     &output,
		config:     config,
	}

	require.NoError(t, service.Run(context.Background()))

	return output.String()
}

func TestService_BasicFlow(t *testing.T) {
	t.Parallel()

	output := runPipeline(t, "type,client,tx,amount\n"+
		"deposit,1,1,10.0\n"+
		"deposit,2,2,20.0\n"+
		"withdrawal,1,3,5.0\n", services.Config{})

	assert.Equal(t, "client,available,held,total,locked\n"+
		"1,5.0000,0.0000,5.0000,false\n"+
		"2,20.0000,0.0000,20.0000,false\n", output)
}

func TestService_MalformedRecordSkipped(t *testing.T) {
	t.Parallel()

	output := runPipeline(t, "type,client,tx,amount\n"+
		"deposit,1,1,10.0\n"+
		"invalid,data,here,0\n"+
		"deposit,1,2,5.0\n", services.Config{})

	assert.Equal(t, "client,available,held,total,locked\n"+
		"1,15.0000,0.0000,15.0000,false\n", output)
}

func TestService_DisputeLifecycle(t *testing.T) {
	t.Parallel()

	// The chargeback targets an undisputed transaction, so it is rejected
	// and the account never locks.
	output := runPipeline(t, "type,client,tx,amount\n"+
		"deposit,1,1,100.0\n"+
		"deposit,1,2,50.0\n"+
		"dispute,1,1,\n"+
		"resolve,1,1,\n"+
		"chargeback,1,2,\n"+
		"deposit,1,3,10.0\n", services.Config{})

	assert.Equal(t, "client,available,held,total,locked\n"+
		"1,160.0000,0.0000,160.0000,false\n", output)
}

func TestService_ChargebackLocksAccount(t *testing.T) {
	t.Parallel()

	output := runPipeline(t, "type,client,tx,amount\n"+
		"deposit,1,1,100.0\n"+
		"dispute,1,1,\n"+
		"chargeback,1,1,\n"+
		"withdrawal,1,2,10.0\n", services.Config{})

	assert.Equal(t, "client,available,held,total,locked\n"+
		"1,0.0000,0.0000,0.0000,true\n", output)
}

func TestService_EvictionTransparent(t *testing.T) {
	t.Parallel()

	output := runPipeline(t, "type,client,tx,amount\n"+
		"deposit,1,1,10.0\n"+
		"deposit,2,2,10.0\n"+
		"deposit,3,3,10.0\n"+
		"deposit,1,4,10.0\n", services.Config{RegistryCapacity: 2})

	assert.Equal(t, "client,available,held,total,locked\n"+
		"1,20.0000,0.0000,20.0000,false\n"+
		"2,10.0000,0.0000,10.0000,false\n"+
		"3,10.0000,0.0000,10.0000,false\n", output)
}

func TestService_MissingInputFails(t *testing.T) {
	t.Parallel()

	repository := storage.NewAccountInMemoryRepository()

	service := &Service{
		Engine:     services.NewEngine(repository, services.Config{}),
		Repository: repository,
		Source:     csv.NewTransactionSource(filepath.Join(t.TempDir(), "absent.csv")),
		Logger:     &libLog.NoneLogger{},
		Output:     &bytes.Buffer{},
	}

	assert.Error(t, service.Run(context.Background()))
}

func TestInitService_UnknownSource(t *testing.T) {
	_, err := InitService(Options{Source: "carrier-pigeon"})

	assert.Error(t, err)
}

func TestInitService_AMQPRequiresConnectionSettings(t *testing.T) {
	t.Setenv("RABBITMQ_URI", "")
	t.Setenv("RABBITMQ_QUEUE", "")

	_, err := InitService(Options{Source: SourceAMQP})

	assert.Error(t, err)
}

func TestInitService_AppliesOverrides(t *testing.T) {
	t.Setenv("BACKPRESSURE_CAPACITY", "128")
	t.Setenv("IDLE_TIMEOUT", "90s")

	service, err := InitService(Options{
		Source:           SourceCSV,
		InputPath:        "ignored.csv",
		RegistryCapacity: 7,
	})

	require.NoError(t, err)
	assert.Equal(t, 128, service.config.BackpressureCapacity)
	assert.Equal(t, 7, service.config.RegistryCapacity)
	assert.Equal(t, "1m30s", service.config.IdleTimeout.String())
}
