package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportOrdersCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pedidos.csv")
	require.NoError(t, exportOrdersCSV(path, sampleOrders()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	// Header plus one line per item across both orders.
	require.Len(t, records, 5)
	assert.Equal(t, "Fecha", records[0][0])
	assert.Equal(t, "Ana García", records[1][1])
	assert.Equal(t, "Sello comercial", records[1][4])
	// Every item of the multi-item order exports on its own line.
	assert.Equal(t, "Logo estudio", records[2][4])
	assert.Equal(t, "Firma notarial", records[3][4])
	assert.Equal(t, "Fechador", records[4][4])
	assert.Equal(t, "Moto", records[2][11])
}

func TestExportOrdersCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pedidos.csv")
	err := exportOrdersCSV(path, nil)
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
