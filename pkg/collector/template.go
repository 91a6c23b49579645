package collector

// documentMapping is the mapping applied when a new day's action-log
// index is created (§4.8). Dates are mapped explicitly so the
// day-partitioned indices remain queryable as a single date-ranged index
// pattern (action-*) from Kibana or a raw _search across indices.
var documentMapping = []byte(`{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 1
  },
  "mappings": {
    "properties": {
      "id":               { "type": "keyword" },
      "date":             { "type": "date" },
      "app":              { "type": "keyword" },
      "host":             { "type": "keyword" },
      "action":           { "type": "keyword" },
      "result":           { "type": "keyword" },
      "error_code":       { "type": "keyword" },
      "error_message":    { "type": "text" },
      "elapsed":          { "type": "long" },
      "cpu_time":         { "type": "long" },
      "context":          { "type": "object", "enabled": false },
      "stats":            { "type": "object", "enabled": false },
      "performance_stats":{ "type": "object", "enabled": false },
      "correlation_ids":  { "type": "keyword" },
      "ref_ids":          { "type": "keyword" },
      "clients":          { "type": "keyword" },
      "is_root":          { "type": "boolean" },
      "trace_log":        { "type": "text", "index": false }
    }
  }
}`)
