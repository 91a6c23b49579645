// Package diagram implements the DiagramBuilder (§4.9): it reconstructs
// an app/action/client graph or a single action's causal tree from the
// documents stored by the collector, and renders either as Graphviz dot.
package diagram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/JailtonJunior94/actionlog/pkg/actionlog"
)

// Aggregation size caps (§9 "hard caps that can silently truncate wide
// fan-out; this is a known approximation, not a bug").
const (
	archAppSize    = 100
	archActionSize = 500
	archClientSize = 100

	actionDiagramMaxDocs = 10000
)

// ErrActionNotFound is returned by Action when the given id has no
// matching stored document.
var ErrActionNotFound = fmt.Errorf("diagram: action not found")

// Builder reconstructs diagrams from documents stored in Elasticsearch's
// action-* indices.
type Builder struct {
	es *elasticsearch.Client
}

// NewBuilder creates a Builder over an existing Elasticsearch client.
func NewBuilder(es *elasticsearch.Client) *Builder {
	return &Builder{es: es}
}

// Arch builds the app/action/client diagram over the last `hours` of
// stored actions, aggregating on app → action → client. Apps listed in
// excludeApps, and any edge incident to them, are omitted (§4.9).
func (b *Builder) Arch(ctx context.Context, hours int, excludeApps []string) (string, error) {
	if hours <= 0 {
		hours = 24
	}
	excluded := toSet(excludeApps)

	query := map[string]any{
		"size": 0,
		"query": map[string]any{
			"range": map[string]any{
				"date": map[string]any{
					"gte": fmt.Sprintf("now-%dh", hours),
					"lte": "now",
				},
			},
		},
		"aggs": map[string]any{
			"by_app": map[string]any{
				"terms": map[string]any{"field": "app", "size": archAppSize},
				"aggs": map[string]any{
					"by_action": map[string]any{
						"terms": map[string]any{"field": "action", "size": archActionSize},
						"aggs": map[string]any{
							"by_client": map[string]any{
								"terms": map[string]any{"field": "clients", "size": archClientSize},
							},
						},
					},
				},
			},
		},
	}

	body, err := json.Marshal(query)
	if err != nil {
		return "", fmt.Errorf("diagram: marshal arch query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{"action-*"},
		Body:  bytes.NewReader(body),
	}
	res, err := req.Do(ctx, b.es)
	if err != nil {
		return "", fmt.Errorf("diagram: arch search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return "", fmt.Errorf("diagram: arch search: %s", res.String())
	}

	var parsed archAggResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("diagram: decode arch response: %w", err)
	}

	return renderArch(parsed, excluded), nil
}

// Action builds the causal diagram for actionID: the action's own
// correlation root(s), every sibling sharing a correlation id, and edges
// following refIds (caller → callee) (§4.9).
func (b *Builder) Action(ctx context.Context, actionID string) (string, error) {
	self, err := b.fetchByID(ctx, actionID)
	if err != nil {
		return "", err
	}
	if self == nil {
		return "", ErrActionNotFound
	}

	var roots []string
	if self.IsRoot {
		roots = []string{self.ID}
	} else {
		roots = self.CorrelationIDs
	}

	siblings, err := b.fetchByCorrelationIDs(ctx, roots, actionDiagramMaxDocs)
	if err != nil {
		return "", err
	}

	byID := make(map[string]*actionlog.ActionDocument, len(siblings)+len(roots))
	for _, doc := range siblings {
		d := doc
		byID[d.ID] = d
	}
	byID[self.ID] = self

	if !self.IsRoot {
		rootDocs, err := b.fetchManyByID(ctx, roots)
		if err != nil {
			return "", err
		}
		for _, doc := range rootDocs {
			d := doc
			byID[d.ID] = d
		}
	}

	return renderAction(byID), nil
}

func (b *Builder) fetchByID(ctx context.Context, id string) (*actionlog.ActionDocument, error) {
	docs, err := b.search(ctx, map[string]any{
		"size":  1,
		"query": map[string]any{"term": map[string]any{"id": id}},
	})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docs[0], nil
}

func (b *Builder) fetchManyByID(ctx context.Context, ids []string) ([]*actionlog.ActionDocument, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	terms := make([]any, len(ids))
	for i, id := range ids {
		terms[i] = id
	}
	return b.search(ctx, map[string]any{
		"size":  len(ids),
		"query": map[string]any{"terms": map[string]any{"id": terms}},
	})
}

func (b *Builder) fetchByCorrelationIDs(ctx context.Context, roots []string, limit int) ([]*actionlog.ActionDocument, error) {
	if len(roots) == 0 {
		return nil, nil
	}
	terms := make([]any, len(roots))
	for i, r := range roots {
		terms[i] = r
	}
	return b.search(ctx, map[string]any{
		"size":  limit,
		"query": map[string]any{"terms": map[string]any{"correlation_ids": terms}},
	})
}

func (b *Builder) search(ctx context.Context, query map[string]any) ([]*actionlog.ActionDocument, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("diagram: marshal query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{"action-*"},
		Body:  bytes.NewReader(body),
	}
	res, err := req.Do(ctx, b.es)
	if err != nil {
		return nil, fmt.Errorf("diagram: search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("diagram: search: %s", res.String())
	}

	var parsed hitsResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("diagram: decode search response: %w", err)
	}

	out := make([]*actionlog.ActionDocument, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		var doc actionlog.ActionDocument
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			continue
		}
		out = append(out, &doc)
	}
	return out, nil
}

type hitsResponse struct {
	Hits struct {
		Hits []struct {
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

type archAggResponse struct {
	Aggregations struct {
		ByApp struct {
			Buckets []appBucket `json:"buckets"`
		} `json:"by_app"`
	} `json:"aggregations"`
}

type appBucket struct {
	Key      string `json:"key"`
	ByAction struct {
		Buckets []actionBucket `json:"buckets"`
	} `json:"by_action"`
}

type actionBucket struct {
	Key      string `json:"key"`
	ByClient struct {
		Buckets []clientBucket `json:"buckets"`
	} `json:"by_client"`
}

type clientBucket struct {
	Key string `json:"key"`
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// renderArch turns the app→action→client aggregation into a directed dot
// graph: nodes are apps, edges client→app are labeled with the
// aggregated action names that flowed across that edge.
func renderArch(resp archAggResponse, excluded map[string]struct{}) string {
	type edgeKey struct{ from, to string }
	edgeActions := map[edgeKey]map[string]struct{}{}
	nodes := map[string]struct{}{}

	for _, app := range resp.Aggregations.ByApp.Buckets {
		if _, skip := excluded[app.Key]; skip {
			continue
		}
		nodes[app.Key] = struct{}{}

		for _, action := range app.ByAction.Buckets {
			for _, client := range action.ByClient.Buckets {
				if _, skip := excluded[client.Key]; skip {
					continue
				}
				nodes[client.Key] = struct{}{}

				key := edgeKey{from: client.Key, to: app.Key}
				if edgeActions[key] == nil {
					edgeActions[key] = map[string]struct{}{}
				}
				edgeActions[key][action.Key] = struct{}{}
			}
		}
	}

	var buf strings.Builder
	buf.WriteString("digraph arch {\n")
	buf.WriteString("  rankdir=LR;\n")

	sortedNodes := sortedKeys(nodes)
	for _, n := range sortedNodes {
		fmt.Fprintf(&buf, "  %q;\n", n)
	}

	edges := make([]edgeKey, 0, len(edgeActions))
	for k := range edgeActions {
		edges = append(edges, k)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].from != edges[j].from {
			return edges[i].from < edges[j].from
		}
		return edges[i].to < edges[j].to
	})

	for _, e := range edges {
		actions := sortedKeys(edgeActions[e])
		label := strings.Join(actions, "\\n")
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.from, e.to, label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// renderAction turns a set of correlated action documents into a dot
// graph: nodes are actions labeled app:action, edges follow refIds
// (caller → callee).
func renderAction(byID map[string]*actionlog.ActionDocument) string {
	var buf strings.Builder
	buf.WriteString("digraph action {\n")
	buf.WriteString("  rankdir=TB;\n")

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		doc := byID[id]
		label := fmt.Sprintf("%s:%s", doc.App, doc.Action)
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, label)
	}

	for _, id := range ids {
		doc := byID[id]
		for _, refID := range doc.RefIDs {
			if _, ok := byID[refID]; !ok {
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q;\n", refID, id)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}
