package web

// ── Base layout ───────────────────────────────────────────────────────────────

const tmplBase = `
{{define "base"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Title}}</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:system-ui,sans-serif;background:#fafafa;color:#18181b;font-size:14px;line-height:1.5}
a{color:#2563eb;text-decoration:none}
a:hover{text-decoration:underline}
nav{background:#fff;border-bottom:1px solid #e4e4e7;padding:10px 16px;display:flex;gap:16px;align-items:center}
nav .brand{font-weight:700;font-size:15px}
.layout{display:flex;gap:16px;padding:16px}
aside{min-width:240px;max-width:280px}
main{flex:1;min-width:0}
h1{font-size:18px;font-weight:700;margin-bottom:4px}
h2{font-size:13px;font-weight:600;color:#71717a;text-transform:uppercase;letter-spacing:.05em;margin:16px 0 8px}
.desc{color:#71717a;margin-bottom:12px}
.section{background:#fff;border:1px solid #e4e4e7;border-radius:6px;margin-bottom:16px;padding:12px;overflow-x:auto}
.filters{display:flex;gap:16px;flex-wrap:wrap;margin-bottom:12px}
.seg a{display:inline-block;padding:3px 10px;border:1px solid #d4d4d8;border-radius:4px;color:#3f3f46;font-size:12px;margin-right:2px}
.seg a.active{background:#18181b;border-color:#18181b;color:#fff}
.seg .lbl{font-size:11px;color:#71717a;margin-right:6px}
table{border-collapse:collapse;font-size:12px}
th{padding:6px 10px;border-bottom:1px solid #e4e4e7;color:#71717a;font-weight:600;font-size:11px;text-align:center}
th.fn,td.fn{text-align:left;white-space:nowrap}
td{padding:5px 10px;border-bottom:1px solid #f4f4f5;text-align:center;white-space:nowrap}
td.same{background:#dcfce7}
td.ws{background:#fef9c3}
td.tcp{background:#f3e8ff}
.grade-fast{color:#15803d}
.grade-moderate{color:#a16207}
.grade-slow{color:#c2410c}
.grade-critical{color:#b91c1c;font-weight:600}
.grade-none{color:#a1a1aa}
.db{display:block;padding:2px 0;color:#3f3f46}
.db .box{display:inline-block;width:12px;text-align:center;margin-right:4px}
.group{margin-bottom:10px}
.group-hdr{font-weight:600;font-size:12px}
.dim{color:#71717a;font-size:11px}
.bars{display:flex;align-items:flex-end;gap:2px;height:48px}
.bar{background:#3b82f6;width:6px;min-height:1px}
.bar.cold{background:#f97316}
details{border-bottom:1px solid #f4f4f5;padding:6px 0}
summary{cursor:pointer;font-weight:600}
details p,details ul,details pre{margin-top:6px}
details ul{padding-left:20px}
pre{background:#f4f4f5;padding:6px;border-radius:4px}
</style>
</head>
<body>
<nav><span class="brand">Serverless Database Latency</span><a href="/">Dashboard</a><a href="/faq">FAQ</a></nav>
{{template "content" .}}
</body>
</html>{{end}}
`

// ── Dashboard ─────────────────────────────────────────────────────────────────

const tmplDashboard = `
{{define "content"}}
<div class="layout">
<aside>
<div class="section">
<h2>Databases</h2>
<div class="dim">{{len .State.Selected}} of {{.DatabaseCount}} selected</div>
<p><a href="{{.SelectAllHref}}">Select all</a> · <a href="{{.SelectNoneHref}}">Clear</a></p>
{{range .Sidebar}}
<div class="group">
<a class="group-hdr" href="{{.Href}}">{{check .Checked}} {{.Label}} <span class="dim">{{.Connection}}</span></a>
{{range .Databases}}<a class="db" href="{{.Href}}"><span class="box">{{check .Checked}}</span>{{.Name}} <span class="dim">{{.Provider}}</span></a>{{end}}
</div>
{{end}}
</div>
</aside>
<main>
<h1>{{.Table.Title}}</h1>
<p class="desc">{{.Table.Description}}</p>
<div class="filters">
<div class="seg"><span class="lbl">Connection</span>{{range .ConnectionLinks}}<a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a>{{end}}</div>
<div class="seg"><span class="lbl">Queries</span>{{range .QueryLinks}}<a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a>{{end}}</div>
<div class="seg"><span class="lbl">Regions</span>{{range .RegionLinks}}<a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a>{{end}}</div>
</div>
<div class="section">
{{if not .Table.Columns}}<p class="dim">No databases selected.</p>{{else}}
<table>
<tr><th class="fn">Function</th>{{range .Table.Columns}}<th colspan="{{len $.Table.QueryTypes}}">{{.RegionLabel}}<br><span class="dim">{{.Connection}} · {{len .Databases}} db</span></th>{{end}}</tr>
{{if gt (len .Table.QueryTypes) 1}}<tr><th></th>{{range .Table.Columns}}{{range $.Table.QueryTypes}}<th>{{title .}}</th>{{end}}{{end}}</tr>{{end}}
{{range .Table.Rows}}{{$fn := .Function}}
<tr><td class="fn">{{$fn.RegionLabel}}<br><span class="dim">{{$fn.Name}}</span></td>
{{range $i, $cell := .Cells}}{{$col := index $.Table.Columns $i}}{{range $cell.Values}}<td class="{{cellClass $cell.SameRegion $col.Connection}}"><span class="grade-{{.Grade}}">{{fmtLatency .Latency}}</span></td>{{end}}{{end}}
</tr>
{{end}}
</table>
<p class="dim">Green cells are same-region pairs. Averages over the last {{.WindowDays}} days, computed {{fmtTime .LoadedAt}}.</p>
{{end}}
</div>
{{if .History}}
<h2>Daily history</h2>
{{range .History}}
<div class="section">
<div class="group-hdr">{{.Database.Name}} <span class="dim">{{.Database.RegionLabel}} · {{.Database.ConnectionMethod}}</span> <a class="dim" href="/api/v1/databases/{{.Database.ID}}/history">json</a></div>
{{if not .Points}}<p class="dim">No data in the window.</p>{{else}}
<div class="bars">{{$max := .Max}}{{range .Points}}{{if and $.ShowCold .Cold.Valid}}<div class="bar cold" title="{{.Date}} cold {{fmtLatency .Cold}}" style="height:{{barPct .Cold $max}}%"></div>{{end}}{{if and $.ShowHot .Hot.Valid}}<div class="bar" title="{{.Date}} hot {{fmtLatency .Hot}}" style="height:{{barPct .Hot $max}}%"></div>{{end}}{{end}}</div>
{{end}}
</div>
{{end}}
{{end}}
{{template "faq" .}}
</main>
</div>
{{end}}
`

// ── FAQ ───────────────────────────────────────────────────────────────────────

const tmplFAQ = `
{{define "faq"}}
<h2>Frequently Asked Questions</h2>
<div class="section">
{{range .FAQ}}
<details>
<summary>{{.Question}}</summary>
{{range .Paragraphs}}<p>{{.}}</p>{{end}}
{{if .Bullets}}<ul>{{range .Bullets}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{if .Code}}<pre>{{.Code}}</pre>{{end}}
{{range .Notes}}<p><em>{{.}}</em></p>{{end}}
</details>
{{end}}
<p class="dim"><a href="{{.ArticleURL}}" rel="noopener noreferrer">Learn more about HTTP vs WebSockets for Postgres queries</a></p>
</div>
{{end}}
`

const tmplFAQPage = `
{{define "content"}}
<div class="layout"><main>
{{template "faq" .}}
</main></div>
{{end}}
`

// ── Unavailable ───────────────────────────────────────────────────────────────

const tmplUnavailable = `
{{define "content"}}
<div class="layout"><main>
<div class="section">
<h1>Data unavailable</h1>
<p class="desc">Benchmark data could not be loaded right now. Please try again in a moment.</p>
</div>
</main></div>
{{end}}
`
