package network

import (
	"bytes"
	"fmt"
	"html/template"
)

var pageTemplate = template.Must(template.New("network").Parse(htmlTemplate))

// Layouts lists the accepted layout names.
var Layouts = []string{"force", "circle", "grid", "concentric"}

// HTMLOptions configures page generation.
type HTMLOptions struct {
	Layout string // force, circle, grid or concentric
	Title  string
}

type pageData struct {
	Title     string
	GraphJSON template.JS
	Layout    string
	Weighted  bool
}

// ToHTML renders g as a standalone Cytoscape.js page. Node size follows
// degree and edge width follows weight.
func (g *Graph) ToHTML(opts HTMLOptions) (string, error) {
	layout, err := cytoscapeLayout(opts.Layout)
	if err != nil {
		return "", err
	}

	graphJSON, err := g.ToCytoscapeJSON()
	if err != nil {
		return "", err
	}

	title := opts.Title
	if title == "" {
		title = g.Kind + " network"
	}

	data := pageData{
		Title:     title,
		GraphJSON: template.JS(graphJSON),
		Layout:    layout,
		Weighted:  g.weighted(),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering network page: %w", err)
	}
	return buf.String(), nil
}

// weighted reports whether edge weights carry information.
func (g *Graph) weighted() bool {
	for _, e := range g.Edges {
		if e.Weight != 1 {
			return true
		}
	}
	return false
}

func cytoscapeLayout(layout string) (string, error) {
	switch layout {
	case "", "force":
		return "cose", nil
	case "circle", "grid", "concentric":
		return layout, nil
	default:
		return "", fmt.Errorf("invalid layout %q: must be force, circle, grid or concentric", layout)
	}
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://unpkg.com/cytoscape@3/dist/cytoscape.min.js"></script>
<style>
  html, body { height: 100%; margin: 0; font: 13px system-ui, sans-serif; color: #222; }
  body { display: grid; grid-template-rows: auto 1fr; grid-template-columns: 1fr 280px; }
  header { grid-column: 1 / 3; display: flex; gap: 16px; align-items: center;
           padding: 6px 12px; border-bottom: 1px solid #ddd; background: #fafafa; }
  header h1 { font-size: 15px; margin: 0; flex: 1; }
  header input { width: 220px; padding: 3px 6px; }
  #graph { position: relative; }
  #cy { position: absolute; inset: 0; }
  #none { padding: 40px; color: #777; }
  aside { border-left: 1px solid #ddd; padding: 10px 12px; overflow-y: auto; }
  aside h2 { font-size: 13px; margin: 0 0 6px; word-break: break-word; }
  aside dl { display: grid; grid-template-columns: auto 1fr; gap: 2px 8px; margin: 0 0 10px; }
  aside dt { color: #777; }
  aside li { cursor: pointer; margin-bottom: 3px; }
  aside li:hover { text-decoration: underline; }
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <span id="counts"></span>
  <input id="find" type="search" placeholder="Find node by label">
</header>
<div id="graph"><div id="cy"></div></div>
<aside id="info">Select a node to see its links.</aside>
<script>
const elements = {{.GraphJSON}};
const weighted = {{.Weighted}};

const counts = document.getElementById("counts");
counts.textContent = elements.nodes.length + " nodes, " + elements.edges.length + " edges";

if (elements.nodes.length === 0) {
  document.getElementById("graph").innerHTML =
    '<p id="none">No node has a link above the chosen threshold.</p>';
} else {
  const cy = cytoscape({
    container: document.getElementById("cy"),
    elements: elements,
    layout: { name: "{{.Layout}}", animate: false, fit: true },
    style: [
      { selector: "node", style: {
          "label": "data(label)", "font-size": 8, "text-wrap": "ellipsis", "text-max-width": 120,
          "background-color": "#3b7dd8",
          "width": "mapData(degree, 1, 30, 10, 48)", "height": "mapData(degree, 1, 30, 10, 48)" } },
      { selector: "edge", style: {
          "line-color": "#b9c2cc", "opacity": 0.8,
          "width": weighted ? "mapData(weight, 0, 1, 0.5, 5)" : 1 } },
      { selector: ".faded", style: { "opacity": 0.12 } },
      { selector: "node:selected", style: { "background-color": "#d9534f" } }
    ]
  });

  const info = document.getElementById("info");
  const text = (tag, value) => { const el = document.createElement(tag); el.textContent = value; return el; };

  function focus(node) {
    const hood = node.closedNeighborhood();
    cy.elements().addClass("faded");
    hood.removeClass("faded");
    cy.elements().unselect();
    node.select();

    const d = node.data();
    info.replaceChildren(text("h2", d.label));
    const facts = document.createElement("dl");
    const rows = [["ID", d.id], ["Degree", d.degree]];
    if (d.year) rows.push(["Year", d.year]);
    if (d.documents) rows.push(["Documents", d.documents]);
    if (d.citations) rows.push(["Citations", d.citations]);
    for (const [k, v] of rows) { facts.append(text("dt", k), text("dd", v)); }
    info.append(facts);

    const list = document.createElement("ol");
    node.neighborhood("node").sort((a, b) => b.data("degree") - a.data("degree")).forEach(n => {
      const li = text("li", n.data("label"));
      li.onclick = () => focus(n);
      list.append(li);
    });
    info.append(text("h2", "Linked to"), list);
  }

  cy.on("tap", "node", evt => focus(evt.target));
  cy.on("tap", evt => {
    if (evt.target === cy) {
      cy.elements().removeClass("faded").unselect();
      info.textContent = "Select a node to see its links.";
    }
  });

  document.getElementById("find").addEventListener("change", evt => {
    const q = evt.target.value.trim().toLowerCase();
    if (!q) return;
    const hit = cy.nodes().filter(n => n.data("label").toLowerCase().includes(q)).first();
    if (hit.nonempty()) {
      focus(hit);
      cy.animate({ center: { eles: hit }, zoom: 1.5 });
    }
  });
}
</script>
</body>
</html>
`
