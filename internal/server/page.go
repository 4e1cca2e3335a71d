package server

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Film Dashboard</title>
<script src="{{.ScriptURL}}"></script>
<style>
:root { --bg: #fff; --fg: #1a1a2e; --card-bg: #f8f9fa; --border: #dee2e6; --muted: #6c757d; --err: #c0392b; }
@media (prefers-color-scheme: dark) {
  :root { --bg: #1a1a2e; --fg: #e9ecef; --card-bg: #16213e; --border: #495057; --muted: #adb5bd; --err: #e74c3c; }
}
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--fg); line-height: 1.5; padding: 1rem; max-width: 1400px; margin: 0 auto; }
header { margin-bottom: 1rem; }
header h1 { font-size: 1.5rem; }
header p { color: var(--muted); font-size: .875rem; }
.controls { display: flex; flex-wrap: wrap; gap: 1.5rem; background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: 1rem; margin-bottom: 1rem; }
.controls fieldset { border: none; }
.controls legend { font-weight: 600; font-size: .875rem; margin-bottom: .25rem; }
.genres { display: grid; grid-template-columns: repeat(4, auto); gap: .1rem 1rem; font-size: .875rem; }
.hidden { display: none; }
#error { color: var(--err); font-size: .875rem; min-height: 1.25rem; }
.charts { display: grid; grid-template-columns: repeat(2, 1fr); gap: 1rem; }
@media (max-width: 768px) { .charts { grid-template-columns: 1fr; } }
.chart-box { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: 1rem; }
.chart-box.wide { grid-column: 1 / -1; }
.chart { width: 100%; height: 420px; }
</style>
</head>
<body>
<header>
<h1>Film Dashboard</h1>
<p>{{.Movies}} movies &middot; {{len .Genres}} genres &middot; {{.Years.From}}-{{.Years.To}}</p>
</header>
<form class="controls" id="controls" onsubmit="return false">
<fieldset>
<legend>Select by</legend>
<label><input type="radio" name="mode" value="none" checked> Neither</label>
<label><input type="radio" name="mode" value="movie"> Movie</label>
<label><input type="radio" name="mode" value="genre"> Genre</label>
</fieldset>
<fieldset>
<legend>Release years</legend>
<input type="number" id="from" min="{{.Years.From}}" max="{{.Years.To}}" value="{{.Years.From}}">
&ndash;
<input type="number" id="to" min="{{.Years.From}}" max="{{.Years.To}}" value="{{.Years.To}}">
</fieldset>
<fieldset id="movie-box" class="hidden">
<legend>Movie</legend>
<select id="movie"><option value="">(none)</option>
{{- range .Titles}}<option>{{.}}</option>{{end}}
</select>
</fieldset>
<fieldset id="genre-box" class="hidden">
<legend>Genres</legend>
<div class="genres">
{{- range .Genres}}<label><input type="checkbox" name="genre" value="{{.}}"> {{.}}</label>{{end}}
</div>
</fieldset>
</form>
<div id="error"></div>
<div class="charts">
{{- range $i, $id := .ChartIDs}}
<div class="chart-box{{if eq $i 0}} wide{{end}}"><div class="chart" id="{{$id}}"></div></div>
{{- end}}
</div>
<script>
(function() {
  var ids = {{json .ChartIDs}};
  var charts = {};
  ids.forEach(function(id) {
    var el = document.getElementById(id);
    if (el && typeof echarts !== "undefined") { charts[id] = echarts.init(el); }
  });
  window.addEventListener("resize", function() {
    Object.keys(charts).forEach(function(id) { charts[id].resize(); });
  });

  function apply(up) {
    document.getElementById("error").textContent = "";
    document.getElementById("movie-box").classList.toggle("hidden", !up.visibility.movie);
    document.getElementById("genre-box").classList.toggle("hidden", !up.visibility.genre);
    (up.figures || []).forEach(function(f) {
      if (charts[f.id]) { charts[f.id].setOption(f.options, true); }
    });
  }

  function send(ev) {
    fetch("/api/events", {method: "POST", headers: {"Content-Type": "application/json"}, body: JSON.stringify(ev)})
      .then(function(r) { return r.json().then(function(b) { return {ok: r.ok, body: b}; }); })
      .then(function(res) {
        if (!res.ok) { document.getElementById("error").textContent = res.body.error; return; }
        apply(res.body);
      });
  }

  function checkedGenres() {
    return Array.prototype.map.call(document.querySelectorAll("input[name=genre]:checked"), function(el) { return el.value; });
  }

  document.querySelectorAll("input[name=mode]").forEach(function(el) {
    el.addEventListener("change", function() {
      document.querySelectorAll("input[name=genre]").forEach(function(g) { g.checked = false; });
      document.getElementById("movie").value = "";
      send({input: "mode", mode: el.value});
    });
  });
  document.querySelectorAll("input[name=genre]").forEach(function(el) {
    el.addEventListener("change", function() { send({input: "genres", genres: checkedGenres()}); });
  });
  document.getElementById("movie").addEventListener("change", function(e) {
    send({input: "movie", movie: e.target.value});
  });
  ["from", "to"].forEach(function(id) {
    document.getElementById(id).addEventListener("change", function() {
      send({input: "years", years: {
        from: parseInt(document.getElementById("from").value, 10),
        to: parseInt(document.getElementById("to").value, 10)
      }});
    });
  });

  fetch("/api/state").then(function(r) { return r.json(); }).then(apply);
})();
</script>
</body>
</html>
`
