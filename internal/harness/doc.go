// Package harness runs condition scenarios: YAML files listing builder calls
// (or filter trees) and the conditions and matching rows they must produce.
//
// # Scenario Format
//
//	name: ip_lookup
//	description: "Addresses match every form they were stored in"
//	rows:                      # optional seed data for the customers table
//	  - {name: Alice, ip: 192.0.2.123}
//	  - {name: Bob, ip: 192.0.2.120/29}
//	cases:
//	  - name: bare address
//	    op: find               # defaults to maybe_find
//	    column: ip
//	    value: 192.0.2.123
//	    expect:
//	      template: "ip IN (?,?,?,?,?,?,?,?,?)"
//	      args_unordered: [192.0.2.123, 192.0.2.123/32, ...]
//	      ids: [1, 2]
//	  - name: either
//	    filter:
//	      any:
//	        - {column: name, op: eq, value: Alice}
//	        - {not: {column: ip, op: eq, value: null}}
//	    expect:
//	      absent: false
//
// # Expectations
//
//   - template: exact template text
//   - args: bind values, in order
//   - args_unordered: bind values, in any order
//   - absent: the condition is the zero Condition
//   - error: "invalid_argument" (matched with errors.Is) or a message substring
//   - ids: ids of the seeded rows the condition selects, ascending
//
// Values are compared through canonical JSON, so YAML's 7 equals a bound int64(7).
//
// # Deterministic Testing
//
// Every scenario runs against a fresh in-memory SQLite database. Snapshots of
// the results are canonical JSON and compared with golden files via goldie.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/ip_lookup.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        fmt.Println(e)
//	    }
//	}
package harness
