/*
Package protocol implements the host side of the narrow message channel
between sandboxed game content and the host.

The injected bundle overrides alert/confirm and defines a status emitter;
everything those produce arrives here as a JSON payload with a "type"
discriminant. The Bridge decodes payloads into a closed tagged union and
dispatches: dialogs become notifications, score-update statuses feed the
score reducer. Delivery is fire-and-forget with no acknowledgment; the
only ordering guarantee is arrival order on a single channel.

Deliberate simplifications, inherited from the wire contract: the channel
uses a wildcard recipient policy and the confirm override always answers
affirmatively without user input.
*/
package protocol
