// Package jsonlcsv converts JSON Lines (.jsonl) files to CSV.
//
// Columns are the sorted union of every object's top-level keys, so the
// output is reproducible regardless of input order. Scalar values keep
// their textual form; nested objects and arrays land in their cell as
// compact JSON text. Lines that are not valid JSON objects are skipped
// with warnings rather than aborting the conversion.
//
// Quick start:
//
//	conv, err := jsonlcsv.New(jsonlcsv.WithOverwrite(true))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := conv.ConvertFile("2025-08-27.jsonl", "") // output: 2025-08-27.csv
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.RecordsWritten, "records written to", res.OutputFile)
//
// Inputs ending in .gz are decompressed transparently. A Converter holds no
// per-file state and can be reused across files.
package jsonlcsv
