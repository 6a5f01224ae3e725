package web

import "html/template"

type indexData struct {
	Username string
	Rooms    []string
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Live Chat Room</title>
<style>
body { font-family: sans-serif; margin: 1em; }
#log { border: 1px solid #ccc; height: 20em; overflow-y: scroll; padding: 0.5em; margin: 0.5em 0; }
#users { color: #666; }
.status { color: #999; font-style: italic; }
.private { color: #860; }
</style>
</head>
<body>
<h2>Live Chat Room</h2>
<p>You are <b id="me">{{.Username}}</b> &mdash; online: <span id="users"></span></p>
<p>
<select id="room">
{{- range .Rooms}}
<option>{{.}}</option>
{{- end}}
</select>
<button id="join">Join</button>
<button id="leave">Leave</button>
</p>
<div id="log"></div>
<form id="form">
<input id="msg" size="60" autocomplete="off"
 placeholder="message, or @name message for a private message">
<input type="submit" value="Send">
</form>
<script>
var proto = location.protocol === "https:" ? "wss://" : "ws://";
var conn = new WebSocket(proto + location.host + "/ws");
var log = document.getElementById("log");
var room = document.getElementById("room");

function append(text, cls) {
    var div = document.createElement("div");
    if (cls) div.className = cls;
    div.textContent = text;
    log.appendChild(div);
    log.scrollTop = log.scrollHeight;
}

function send(event, data) {
    conn.send(JSON.stringify({event: event, data: data}));
}

conn.onmessage = function(evt) {
    var env = JSON.parse(evt.data);
    switch (env.event) {
    case "active_users":
        document.getElementById("users").textContent = env.data.users.join(", ");
        break;
    case "status":
        append(env.data.msg, "status");
        break;
    case "message":
        append("[" + env.data.room + "] " + env.data.username + ": " + env.data.msg);
        break;
    case "private_message":
        append("(private) " + env.data.from + ": " + env.data.msg, "private");
        break;
    }
};
conn.onclose = function() { append("connection closed", "status"); };

document.getElementById("join").onclick = function() {
    send("join", {room: room.value});
};
document.getElementById("leave").onclick = function() {
    send("leave", {room: room.value});
};
document.getElementById("form").onsubmit = function() {
    var input = document.getElementById("msg");
    var text = input.value;
    if (text.charAt(0) === "@") {
        var space = text.indexOf(" ");
        if (space > 1) {
            send("message", {type: "private", target: text.slice(1, space), msg: text.slice(space + 1)});
        }
    } else {
        send("message", {room: room.value, msg: text});
    }
    input.value = "";
    return false;
};
</script>
</body>
</html>
`))
