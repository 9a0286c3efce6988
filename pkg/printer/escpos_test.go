package printer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestASCII(t *testing.T) {
	assert.Equal(t, "Remera Basica Logo", ASCII("Remera Básica Logo"))
	assert.Equal(t, "Encargado Deposito", ASCII("Encargado Depósito"))
	assert.Equal(t, "Ninos", ASCII("Niños"))
	assert.Equal(t, "Total ?", ASCII("Total €"))
}

func TestDocument_Lines(t *testing.T) {
	doc := NewDocument(20)
	doc.KeyValue("TOTAL:", "150.00").
		ItemLine(2, "Zapatilla Running Pro Max", "9.00").
		Separator('=')

	out := strings.TrimPrefix(string(doc.Bytes()), "\x1b@")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "TOTAL:"+strings.Repeat(" ", 8)+"150.00", lines[0])
	assert.Len(t, lines[1], 20)
	assert.True(t, strings.HasPrefix(lines[1], "2x Zapatilla"))
	assert.True(t, strings.HasSuffix(lines[1], " 9.00"))
	assert.Equal(t, strings.Repeat("=", 20), lines[2])
}

func TestNewPrinterFromConfig(t *testing.T) {
	p, err := NewPrinterFromConfig("none", "", "")
	require.NoError(t, err)
	assert.False(t, p.IsConnected())
	assert.NoError(t, p.Print(context.Background(), []byte("x")))

	_, err = NewPrinterFromConfig("network", "", "")
	assert.Error(t, err)

	_, err = NewPrinterFromConfig("fax", "", "")
	assert.Error(t, err)
}
