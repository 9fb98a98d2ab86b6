package ktn

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Artifact basenames written by Dump. The configured suffix is appended to
// each name, so one directory can hold several network snapshots.
const (
	minDataFile   = "min.data"
	minCoordsFile = "min.coords"
	tsDataFile    = "ts.data"
	tsCoordsFile  = "ts.coords"
	pairlistFile  = "pairlist"
	attemptedFile = "attempted.coords"
	csvFile       = "mol_data"
)

// energyFormat keeps 17 significant digits so a dump→read round trip
// reproduces every float64 exactly.
const energyFormat = "%.16e"

func (n *Network) artifact(dir, suffix, name string) string {
	if dir == "" {
		dir = n.dumpPath
	}
	if suffix == "" {
		suffix = n.dumpSuffix
	}
	return filepath.Join(dir, name+suffix)
}

// Dump serializes the network as sibling text artifacts in dir: min.data
// (identity and energy per minimum), min.coords, ts.data (endpoints and
// energy per transition-state record), ts.coords, pairlist and
// attempted.coords, each with suffix appended to the filename. Empty dir
// or suffix fall back to the values configured at construction.
//
// Files are written independently: an interrupted dump can leave the set
// partially updated. There is no rollback.
func (n *Network) Dump(dir, suffix string) error {
	writers := []struct {
		name  string
		write func(io.Writer) error
	}{
		{minDataFile, n.writeMinData},
		{minCoordsFile, n.writeMinCoords},
		{tsDataFile, n.writeTSData},
		{tsCoordsFile, n.writeTSCoords},
		{pairlistFile, n.writePairlist},
		{attemptedFile, n.writeAttempted},
	}
	for _, art := range writers {
		path := n.artifact(dir, suffix, art.name)
		if err := writeFile(path, art.write); err != nil {
			return fmt.Errorf("dump %s: %w", path, err)
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

func (n *Network) writeMinData(w io.Writer) error {
	for i, m := range n.minima {
		if _, err := fmt.Fprintf(w, "%d "+energyFormat+"\n", i, m.Energy); err != nil {
			return err
		}
	}
	return nil
}

func (n *Network) writeMinCoords(w io.Writer) error {
	for _, m := range n.minima {
		if err := writeVector(w, m.Coords); err != nil {
			return err
		}
	}
	return nil
}

func (n *Network) writeTSData(w io.Writer) error {
	for _, rec := range n.ts {
		if _, err := fmt.Fprintf(w, "%d %d "+energyFormat+"\n",
			rec.Min1, rec.Min2, rec.Energy); err != nil {
			return err
		}
	}
	return nil
}

func (n *Network) writeTSCoords(w io.Writer) error {
	for _, rec := range n.ts {
		if err := writeVector(w, rec.Coords); err != nil {
			return err
		}
	}
	return nil
}

func (n *Network) writePairlist(w io.Writer) error {
	for _, p := range n.pairlist {
		if _, err := fmt.Fprintf(w, "%d %d\n", p[0], p[1]); err != nil {
			return err
		}
	}
	return nil
}

func (n *Network) writeAttempted(w io.Writer) error {
	for _, pos := range n.attempted {
		if err := writeVector(w, pos); err != nil {
			return err
		}
	}
	return nil
}

func writeVector(w io.Writer, v []float64) error {
	for i, x := range v {
		if i > 0 {
			if _, err := io.WriteString(w, " "); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, energyFormat, x); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// DumpCSV writes every minimum as a "coords, energy" CSV row to
// mol_data<suffix>.csv in dir. Coordinates within a row are
// space-separated. Defaults follow Dump.
func (n *Network) DumpCSV(dir, suffix string) error {
	path := n.artifact(dir, suffix, csvFile) + ".csv"
	return writeFile(path, func(w io.Writer) error {
		if _, err := io.WriteString(w, "coords, energy\n"); err != nil {
			return err
		}
		for _, m := range n.minima {
			fields := make([]string, len(m.Coords))
			for i, x := range m.Coords {
				fields[i] = fmt.Sprintf(energyFormat, x)
			}
			if _, err := fmt.Fprintf(w, "%s, "+energyFormat+"\n",
				strings.Join(fields, " "), m.Energy); err != nil {
				return err
			}
		}
		return nil
	})
}

// Read reconstructs a network from the artifacts written by Dump,
// appending to the receiver. Call it on a fresh network: it assumes
// identities were dense and insertion-ordered at dump time, which holds
// for any file set Dump produced. Missing mandatory artifacts are an
// error; attempted.coords is optional and silently skipped when absent.
// Empty dir or suffix fall back to the values configured at construction.
func (n *Network) Read(dir, suffix string) error {
	minData, err := readRows(n.artifact(dir, suffix, minDataFile))
	if err != nil {
		return err
	}
	minCoords, err := readRows(n.artifact(dir, suffix, minCoordsFile))
	if err != nil {
		return err
	}
	tsData, err := readRows(n.artifact(dir, suffix, tsDataFile))
	if err != nil {
		return err
	}
	tsCoords, err := readRows(n.artifact(dir, suffix, tsCoordsFile))
	if err != nil {
		return err
	}
	pairs, err := readRows(n.artifact(dir, suffix, pairlistFile))
	if err != nil {
		return err
	}

	if len(minData) != len(minCoords) {
		return fmt.Errorf("read network: %d min.data rows but %d min.coords rows",
			len(minData), len(minCoords))
	}
	if len(tsData) != len(tsCoords) {
		return fmt.Errorf("read network: %d ts.data rows but %d ts.coords rows",
			len(tsData), len(tsCoords))
	}

	for i, row := range minData {
		if len(row) != 2 {
			return fmt.Errorf("read network: malformed min.data row %d", i)
		}
		n.AddMinimum(minCoords[i], row[1])
	}
	for i, row := range tsData {
		if len(row) != 3 {
			return fmt.Errorf("read network: malformed ts.data row %d", i)
		}
		if err := n.AddTS(tsCoords[i], row[2], int(row[0]), int(row[1])); err != nil {
			return fmt.Errorf("read network: ts row %d: %w", i, err)
		}
	}
	for i, row := range pairs {
		if len(row) != 2 {
			return fmt.Errorf("read network: malformed pairlist row %d", i)
		}
		n.AddAttemptedPair(int(row[0]), int(row[1]))
	}

	attempted, err := readRows(n.artifact(dir, suffix, attemptedFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, pos := range attempted {
		n.AddAttemptedPosition(pos)
	}
	return nil
}

// readRows parses a whitespace-delimited numeric text file into one float
// slice per non-empty line.
func readRows(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows [][]float64
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		row := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: parse %q: %w", path, line, field, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}
