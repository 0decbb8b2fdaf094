package web

import (
	"html/template"
	"log"
	"net/http"
)

var suggestedQuestions = []string{
	"If the city council gave you a budget to make one big change for women commuters, what would you prioritize and why?",
	"What does a safe late-evening commute look like for you, and where does it break down?",
	"Which local initiative has actually helped you feel safer, and what would make it stronger?",
	"How do you prepare before heading out for an unfamiliar route after dark?",
	"What do you want transit officials to understand about harassment hotspots in your city?",
	"How would you brief a new friend visiting your city about staying safe on public transport?",
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data := struct {
		Questions []string
	}{Questions: suggestedQuestions}
	if err := indexTemplate.Execute(w, data); err != nil {
		log.Printf("failed to render index: %v", err)
	}
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Women Safety Persona Chat (Research Prototype)</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 0; display: flex; height: 100vh; }
  #chat { flex: 2; display: flex; flex-direction: column; padding: 16px; }
  #side { flex: 1; border-left: 1px solid #ddd; padding: 16px; overflow-y: auto; }
  #messages { flex: 1; overflow-y: auto; border: 1px solid #ddd; border-radius: 6px; padding: 12px; margin-bottom: 12px; }
  .msg { margin: 8px 0; padding: 8px 12px; border-radius: 8px; max-width: 80%; white-space: pre-wrap; }
  .user { background: #e3f2fd; margin-left: auto; }
  .assistant { background: #f5f5f5; }
  #controls { display: flex; gap: 8px; }
  #input { flex: 1; padding: 8px; }
  .quick { display: block; width: 100%; text-align: left; margin: 4px 0; padding: 6px; cursor: pointer; }
  #banner { font-style: italic; color: #555; margin: 8px 0; }
  footer { font-size: 12px; color: #888; margin-top: 12px; }
</style>
</head>
<body>
<div id="chat">
  <h2>Women Safety Persona Chat</h2>
  <div id="messages"></div>
  <div id="controls">
    <input id="input" placeholder="Share a scenario or question about urban safety." />
    <button onclick="send()">Send</button>
  </div>
</div>
<div id="side">
  <h3>Persona Controls</h3>
  <select id="persona" onchange="updateBanner()"></select>
  <div id="banner"></div>
  <h4>Quick Questions</h4>
  {{range .Questions}}<button class="quick" onclick="ask(this.textContent)">{{.}}</button>
  {{end}}
  <p><a id="download" href="#" style="display:none">Download Transcript</a></p>
  <footer>Personas cite lived experiences and official data for exploratory research.
  Validate findings with community partners before acting.</footer>
</div>
<script>
let sessionID = "";
let personas = [];

async function loadPersonas() {
  const resp = await fetch("/api/personas");
  personas = await resp.json();
  const sel = document.getElementById("persona");
  for (const p of personas) {
    const opt = document.createElement("option");
    opt.value = p.name;
    opt.textContent = p.name;
    sel.appendChild(opt);
  }
  updateBanner();
}

function updateBanner() {
  const name = document.getElementById("persona").value;
  const p = personas.find(p => p.name === name);
  document.getElementById("banner").textContent = p ? p.banner : "";
}

function addMessage(role, text) {
  const div = document.createElement("div");
  div.className = "msg " + role;
  div.textContent = text;
  const box = document.getElementById("messages");
  box.appendChild(div);
  box.scrollTop = box.scrollHeight;
}

function ask(question) {
  document.getElementById("input").value = question;
  send();
}

async function send() {
  const input = document.getElementById("input");
  const text = input.value.trim();
  if (!text) return;
  input.value = "";
  addMessage("user", text);
  const resp = await fetch("/api/chat", {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify({
      session_id: sessionID,
      persona: document.getElementById("persona").value,
      message: text,
    }),
  });
  if (!resp.ok) {
    addMessage("assistant", "Request failed: " + await resp.text());
    return;
  }
  const data = await resp.json();
  sessionID = data.session_id;
  addMessage("assistant", data.reply);
  const link = document.getElementById("download");
  link.href = "/api/transcript?session=" + sessionID;
  link.style.display = "inline";
}

document.getElementById("input").addEventListener("keydown", e => {
  if (e.key === "Enter") send();
});
loadPersonas();
</script>
</body>
</html>
`))
