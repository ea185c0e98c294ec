package domain

// ApplyPolicy combines existing index records with the records of a new
// run. PolicyAppend concatenates. PolicyReplace keeps one record per File:
// the newest record wins and sits where that File first appeared.
func ApplyPolicy(existing, incoming []SummaryRecord, policy IndexPolicy) []SummaryRecord {
	if policy != PolicyReplace {
		out := make([]SummaryRecord, 0, len(existing)+len(incoming))
		out = append(out, existing...)
		return append(out, incoming...)
	}

	out := make([]SummaryRecord, 0, len(existing)+len(incoming))
	position := make(map[string]int, len(existing)+len(incoming))
	for _, list := range [][]SummaryRecord{existing, incoming} {
		for _, rec := range list {
			if i, ok := position[rec.File]; ok {
				out[i] = rec
				continue
			}
			position[rec.File] = len(out)
			out = append(out, rec)
		}
	}
	return out
}
