package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rosterCSV = "employee_id,date_of_joining,date_of_exit,total_ctc_pa,gender,date_of_birth,total_exp_yrs,qualification_type\n" +
	"1,2021-06-01,,1200000,Female,1990-05-05,9,Graduate\n" +
	"2,2023-09-01,,800000,Male,1996-05-05,3.5,Post Graduate\n" +
	"3,2024-11-01,2025-07-01,700000,Male,1999-05-05,2,Graduate\n"

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSummaryCmd_Text(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte(rosterCSV), 0o600))

	out, err := execute(t, "", "summary", "--csv", path, "--as-of", "2025-10-19")
	require.NoError(t, err)

	assert.Contains(t, out, "Executive Summary as of 2025-10-19 (Financial Year 2026)")
	assert.Contains(t, out, "Active Employees")
	assert.Contains(t, out, "₹ 20,00,000")
	assert.Contains(t, out, "Manpower Growth")
	assert.Contains(t, out, "Financial Year 2022")
}

func TestSummaryCmd_JSONFromStdin(t *testing.T) {
	t.Parallel()

	out, err := execute(t, rosterCSV, "summary", "--csv", "-", "--as-of", "2025-10-19", "--format", "json", "--trailing-years", "2", "--grouping", "international")
	require.NoError(t, err)

	var body struct {
		FiscalYear string   `json:"fiscal_year"`
		Years      []string `json:"years"`
		RosterSize int      `json:"roster_size"`
		KPIs       []struct {
			Key     string `json:"key"`
			Display string `json:"display"`
		} `json:"kpis"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))

	assert.Equal(t, "FY-26", body.FiscalYear)
	assert.Equal(t, []string{"FY-25", "FY-26"}, body.Years)
	assert.Equal(t, 3, body.RosterSize)

	displays := map[string]string{}
	for _, k := range body.KPIs {
		displays[k.Key] = k.Display
	}
	assert.Equal(t, "₹ 2,000,000", displays["total_cost"])
}

func TestSummaryCmd_Validation(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "summary")
	assert.Error(t, err)

	_, err = execute(t, "", "summary", "--csv", "x.csv", "--format", "yaml")
	assert.Error(t, err)

	_, err = execute(t, rosterCSV, "summary", "--csv", "-", "--as-of", "31/03/2025")
	assert.Error(t, err)

	_, err = execute(t, "", "summary", "--csv", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
