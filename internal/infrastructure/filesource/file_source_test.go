package filesource_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/forecast-dashboard/internal/domain"
	"github.com/jhoicas/forecast-dashboard/internal/infrastructure/filesource"
	"github.com/jhoicas/forecast-dashboard/pkg/logger"
)

const header = "store_id,item_id,pred_10,pred_50,pred_90,actual,rmse,mae,wape,overstock_flag,understock_flag\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func load(t *testing.T, cfg filesource.Config) (int, int, error) {
	t.Helper()
	res, err := filesource.NewFileSource(cfg, logger.Nop()).Load(context.Background())
	return len(res.Records), res.Skipped, err
}

func TestLoad_CSV(t *testing.T) {
	path := writeFile(t, "summary.csv", header+
		"CA_1,FOODS_1,8,10,12,9,1.0,0.8,0.05,1,0\n"+
		"CA_1,FOODS_1,9,11,13,12,1.2,1.0,0.07,0,1\n"+
		"TX_2,HOBBIES_1,1,2,3,2,0.5,0.4,0.10,0,0\n")

	res, err := filesource.NewFileSource(filesource.Config{Path: path}, logger.Nop()).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Records, 3)
	assert.Equal(t, 0, res.Skipped)
	assert.Equal(t, path, res.Source)

	first := res.Records[0]
	assert.Equal(t, "CA_1", first.StoreID)
	assert.Equal(t, "FOODS_1", first.ItemID)
	assert.Equal(t, 10.0, first.Pred50)
	assert.True(t, first.Overstock)
	assert.Equal(t, "TX_2", res.Records[2].StoreID, "el orden del archivo se conserva")
}

func TestLoad_ArchivoInexistente_DataUnavailable(t *testing.T) {
	_, _, err := load(t, filesource.Config{Path: filepath.Join(t.TempDir(), "nope.csv")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDataUnavailable))
}

func TestLoad_SinRuta_DataUnavailable(t *testing.T) {
	_, _, err := load(t, filesource.Config{})
	assert.True(t, errors.Is(err, domain.ErrDataUnavailable))
}

func TestLoad_ArchivoVacio_DataUnavailable(t *testing.T) {
	_, _, err := load(t, filesource.Config{Path: writeFile(t, "empty.csv", "")})
	assert.True(t, errors.Is(err, domain.ErrDataUnavailable))
}

func TestLoad_FaltaColumna_DataUnavailable(t *testing.T) {
	path := writeFile(t, "summary.csv", "store_id,item_id,pred_50,actual\nCA_1,FOODS_1,10,9\n")
	_, _, err := load(t, filesource.Config{Path: path})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDataUnavailable))
	assert.Contains(t, err.Error(), "rmse")
}

func TestLoad_FilasMalformadasSeDescartan(t *testing.T) {
	path := writeFile(t, "summary.csv", header+
		"CA_1,FOODS_1,8,10,12,9,1.0,0.8,0.05,1,0\n"+
		"CA_1,FOODS_1,abc,10,12,9,1.0,0.8,0.05,1,0\n"+ // número inválido
		"CA_1,FOODS_1,8,10,12\n"+ // campos faltantes
		"\n"+
		"CA_1,FOODS_1,8,10,12,9,1.0,0.8,0.05,2,0\n"+ // bandera inválida
		"CA_2,FOODS_1,8,10,12,9,1.0,0.8,0.05,0,0\n")

	n, skipped, err := load(t, filesource.Config{Path: path})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 3, skipped)
}

func TestLoad_TSVPorExtension(t *testing.T) {
	path := writeFile(t, "summary.tsv",
		"store_id\titem_id\tpred_10\tpred_50\tpred_90\tactual\trmse\tmae\twape\toverstock_flag\tunderstock_flag\n"+
			"CA_1\tFOODS_1\t8\t10\t12\t9\t1.0\t0.8\t0.05\t1\t0\n")
	n, skipped, err := load(t, filesource.Config{Path: path})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, skipped)
}

func TestLoad_DelimitadorExplicito(t *testing.T) {
	path := writeFile(t, "summary.txt",
		"store_id;item_id;pred_10;pred_50;pred_90;actual;rmse;mae;wape;overstock_flag;understock_flag\n"+
			"CA_1;FOODS_1;8;10;12;9;1.0;0.8;0.05;1;0\n")
	n, _, err := load(t, filesource.Config{Path: path, Delimiter: ";"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestLoad_Latin1(t *testing.T) {
	content := header + "Bogotá_1,CAFÉ_1,8,10,12,9,1.0,0.8,0.05,1,0\n"
	encoded, err := charmap.ISO8859_1.NewEncoder().String(content)
	require.NoError(t, err)
	path := writeFile(t, "summary.csv", encoded)

	res, err := filesource.NewFileSource(filesource.Config{Path: path, Charset: "iso-8859-1"}, logger.Nop()).
		Load(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Bogotá_1", res.Records[0].StoreID)
	assert.Equal(t, "CAFÉ_1", res.Records[0].ItemID)
}

func TestLoad_CharsetNoSoportado(t *testing.T) {
	path := writeFile(t, "summary.csv", header)
	_, _, err := load(t, filesource.Config{Path: path, Charset: "ebcdic"})
	assert.True(t, errors.Is(err, domain.ErrDataUnavailable))
}

func TestLoad_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"store_id", "item_id", "pred_10", "pred_50", "pred_90", "actual", "rmse", "mae", "wape", "overstock_flag", "understock_flag"},
		{"CA_1", "FOODS_1", 8, 10, 12, 9, 1.0, 0.8, 0.05, 1, 0},
		{"CA_1", "FOODS_2", 8, 10, 12, 9, 1.0, 0.8, 0.05, "x", 0},
		{"CA_2", "FOODS_1", 1, 2, 3, 2, 0.5, 0.4, 0.1, 0, 1},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	path := filepath.Join(t.TempDir(), "summary.xlsx")
	require.NoError(t, f.SaveAs(path))

	res, err := filesource.NewFileSource(filesource.Config{Path: path}, logger.Nop()).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 10.0, res.Records[0].Pred50)
	assert.True(t, res.Records[1].Understock)
}

func TestLoad_XLSXIgnoraFormatoDeCelda(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"store_id", "item_id", "pred_10", "pred_50", "pred_90", "actual", "rmse", "mae", "wape", "overstock_flag", "understock_flag"},
		{"CA_1", "FOODS_1", 8, 10, 12, 9, 1.004, 0.8, 0.05, 1, 0},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	percent, err := f.NewStyle(&excelize.Style{NumFmt: 9}) // 0%
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "I2", "I2", percent))
	twoDecimals, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "G2", "G2", twoDecimals))

	path := filepath.Join(t.TempDir(), "summary.xlsx")
	require.NoError(t, f.SaveAs(path))

	res, err := filesource.NewFileSource(filesource.Config{Path: path}, logger.Nop()).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, 0, res.Skipped)
	assert.Equal(t, 0.05, res.Records[0].WAPE)
	assert.Equal(t, 1.004, res.Records[0].RMSE)
}

func TestLoad_XLSXCorrupto_DataUnavailable(t *testing.T) {
	path := writeFile(t, "summary.xlsx", "no es un zip")
	_, _, err := load(t, filesource.Config{Path: path})
	assert.True(t, errors.Is(err, domain.ErrDataUnavailable))
}
