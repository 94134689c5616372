package http

// indexHTML is the embedded browser UI: image upload, workflow selection,
// result display, and the Mermaid diagram of the selected workflow.
const indexHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>nutrigraph — Food Image Analysis</title>
    <script src="https://unpkg.com/mermaid@10/dist/mermaid.min.js"></script>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 960px; margin: 2rem auto; padding: 0 1rem; }
        fieldset { border: 1px solid #ddd; border-radius: 8px; margin-bottom: 1rem; }
        pre { background: #f6f8fa; padding: 1rem; border-radius: 8px; overflow-x: auto; }
        button { padding: 0.5rem 1rem; cursor: pointer; }
        .score { font-size: 1.5rem; font-weight: bold; }
    </style>
</head>
<body>
<h1>🍽️ nutrigraph</h1>
<p>Food-image nutrition analysis workflows.</p>

<fieldset>
    <legend>Analyze</legend>
    <label>Workflow:
        <select id="workflow">
            <option value="analysis">analysis</option>
            <option value="screening">screening</option>
        </select>
    </label>
    <label>Image: <input type="file" id="image" accept=".jpg,.jpeg,.png" /></label>
    <label>Notes: <input type="text" id="notes" placeholder="dietary restrictions, allergies..." /></label>
    <button id="analyze">🔍 Analyze</button>
</fieldset>

<div id="result" hidden>
    <h2>Result</h2>
    <p class="score" id="score"></p>
    <pre id="output"></pre>
</div>

<h2>Workflow Diagram</h2>
<div id="diagram"></div>

<script>
    mermaid.initialize({ startOnLoad: false });

    async function drawGraph(runId) {
        const workflow = document.getElementById('workflow').value;
        let url = '/api/graph?workflow=' + workflow;
        if (runId) url += '&run=' + runId;
        const src = await (await fetch(url)).text();
        const { svg } = await mermaid.render('wfgraph', src);
        document.getElementById('diagram').innerHTML = svg;
    }

    document.getElementById('workflow').addEventListener('change', () => drawGraph());

    document.getElementById('analyze').addEventListener('click', async () => {
        const image = document.getElementById('image').files[0];
        if (!image) { alert('Please choose an image first.'); return; }

        const body = {
            workflow: document.getElementById('workflow').value,
            state: {
                user_image_unit: image.name,
                user_input: document.getElementById('notes').value
            }
        };
        const run = await (await fetch('/api/runs', {
            method: 'POST',
            headers: { 'Content-Type': 'application/json' },
            body: JSON.stringify(body)
        })).json();

        document.getElementById('result').hidden = false;
        document.getElementById('output').textContent = JSON.stringify(run, null, 2);
        const score = run.final && run.final.output ? run.final.output.quality_score : null;
        document.getElementById('score').textContent =
            score != null ? 'Quality: ' + Math.round(score * 100) + '%' : 'Status: ' + run.status;
        drawGraph(run.id);
    });

    drawGraph();
</script>
</body>
</html>
`
