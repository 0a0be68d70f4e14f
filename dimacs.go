package qfbv

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseDIMACS parses text in the DIMACS CNF format into a CNF formula.
//
// For convenience, a few non-standard variations are accepted, matching the
// teacher implementation this was adapted from:
//
//   - Comments (lines beginning with 'c') may appear anywhere, not just in
//     the preamble.
//   - The problem line may be missing.
//   - A trailer after a line containing a single '%' is ignored.
func ParseDIMACS(r io.Reader) (CNF, error) {
	var problem struct {
		vars    int
		clauses int
	}
	var cnf CNF
	var clause []Literal
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if len(line) == 0 || line[0] == 'c' {
			continue
		}
		if line == "%" {
			break
		}
		if line[0] == 'p' {
			if len(cnf.Clauses) > 0 {
				return CNF{}, errors.New("problem line appears after clauses")
			}
			if problem.vars > 0 {
				return CNF{}, errors.New("multiple problem lines")
			}
			fields := strings.Fields(line)
			if len(fields) != 4 {
				return CNF{}, errors.Errorf("malformed problem line %q", line)
			}
			if fields[0] != "p" {
				return CNF{}, errors.Errorf("problem line starts with unexpected signifier %q", fields[0])
			}
			if fields[1] != "cnf" {
				return CNF{}, errors.Errorf("only cnf supported; got %q", fields[1])
			}
			var err error
			problem.vars, err = strconv.Atoi(fields[2])
			if err != nil {
				return CNF{}, errors.Wrap(err, "malformed #vars in problem line")
			}
			problem.clauses, err = strconv.Atoi(fields[3])
			if err != nil {
				return CNF{}, errors.Wrap(err, "malformed #clauses in problem line")
			}
			if problem.vars < 0 {
				return CNF{}, errors.Errorf("invalid #vars %d", problem.vars)
			}
			if problem.clauses < 0 {
				return CNF{}, errors.Errorf("invalid #clauses %d", problem.clauses)
			}
			continue
		}
		for _, field := range strings.Fields(line) {
			n, err := strconv.Atoi(field)
			if err != nil {
				return CNF{}, errors.Wrap(err, "invalid variable")
			}
			if n == 0 {
				cnf.Clauses = append(cnf.Clauses, Clause(clause).clone())
				clause = nil
			} else {
				clause = append(clause, literalFromInt(n))
			}
		}
	}
	if err := s.Err(); err != nil {
		return CNF{}, err
	}
	if len(clause) > 0 {
		cnf.Clauses = append(cnf.Clauses, Clause(clause).clone())
	}

	if problem.vars > 0 {
		vars := make(map[int]struct{})
		for _, c := range cnf.Clauses {
			for _, l := range c {
				if l.Var > problem.vars {
					return CNF{}, errors.Errorf(
						"formula contains var %d, but problem line asserts %d vars (only vars in [1, %d] expected)",
						l.Var, problem.vars, problem.vars)
				}
				vars[l.Var] = struct{}{}
			}
		}
		if len(vars) > problem.vars {
			return CNF{}, errors.Errorf("problem line specifies %d vars, but there are %d", problem.vars, len(vars))
		}
		if len(cnf.Clauses) != problem.clauses {
			return CNF{}, errors.Errorf("problem line specifies %d clauses, but there are %d", problem.clauses, len(cnf.Clauses))
		}
	}
	return cnf, nil
}

// literalFromInt decodes a signed DIMACS integer: positive k -> (k, false),
// negative k -> (|k|, true).
func literalFromInt(n int) Literal {
	if n < 0 {
		return Literal{Var: -n, Negated: true}
	}
	return Literal{Var: n, Negated: false}
}

// literalToInt is the inverse of literalFromInt.
func literalToInt(l Literal) int {
	if l.Negated {
		return -l.Var
	}
	return l.Var
}

// WriteDIMACS writes cnf in DIMACS CNF format: a "p cnf NVARS NCLAUSES"
// header followed by one line per clause, each terminated by "0" (an empty
// clause prints as a bare "0" line).
func WriteDIMACS(w io.Writer, cnf CNF) error {
	maxVar := 0
	var body strings.Builder
	for _, c := range cnf.Clauses {
		for _, l := range c {
			fmt.Fprintf(&body, "%d ", literalToInt(l))
			if l.Var > maxVar {
				maxVar = l.Var
			}
		}
		body.WriteString("0\n")
	}
	if _, err := fmt.Fprintf(w, "p cnf %d %d\n", maxVar, len(cnf.Clauses)); err != nil {
		return err
	}
	_, err := io.WriteString(w, body.String())
	return err
}
