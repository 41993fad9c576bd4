package locale

type translation struct {
	ptBR string
	es   string
}

// Keys are the English texts.
var translations = map[string]translation{
	// router
	"Sorry %s, you don't have the permissions required to use this command.": {
		"Desculpe %s, você não tem as permissões necessárias para usar este comando.",
		"Lo siento %s, no tienes los permisos necesarios para usar este comando.",
	},
	"Unknown command `%s`. Use `%shelp` to list the commands.": {
		"Comando `%s` desconhecido. Use `%shelp` para listar os comandos.",
		"Comando `%s` desconocido. Usa `%shelp` para listar los comandos.",
	},
	"Something went wrong while running this command.": {
		"Algo deu errado ao executar este comando.",
		"Algo salió mal al ejecutar este comando.",
	},
	"Invalid argument.": {
		"Argumento inválido.",
		"Argumento inválido.",
	},
	"Yes": {"Sim", "Sí"},
	"No":  {"Não", "No"},
	"Only %s can answer this.": {
		"Apenas %s pode responder isto.",
		"Solo %s puede responder esto.",
	},
	"No answer in time, nothing was done.": {
		"Sem resposta a tempo, nada foi feito.",
		"Sin respuesta a tiempo, no se hizo nada.",
	},
	"Cancelled.": {"Cancelado.", "Cancelado."},

	// count
	"I've found %d messages in %s. %s": {
		"Encontrei %d mensagens em %s. %s",
		"He encontrado %d mensajes en %s. %s",
	},
	"Seems like it's just getting started, welcome everyone!": {
		"Parece que está só começando, boas-vindas a todos!",
		"Parece que apenas está empezando, ¡bienvenidos todos!",
	},
	"Keep it up!":         {"Continuem assim!", "¡Sigan así!"},
	"Gaining traction!":   {"Ganhando força!", "¡Tomando impulso!"},
	"That's a lot!":       {"Isso é bastante!", "¡Eso es mucho!"},
	"Whoa! That's A LOT!": {"Uau! Isso é MUITO!", "¡Guau! ¡Eso es MUCHÍSIMO!"},

	// purge
	"Please provide an amount of messages to delete, or use 'all' to purge the channel.": {
		"Informe a quantidade de mensagens a apagar, ou use 'all' para limpar o canal.",
		"Indica la cantidad de mensajes a borrar, o usa 'all' para vaciar el canal.",
	},
	"Please be patient, this might take some time...": {
		"Tenha paciência, isso pode demorar um pouco...",
		"Ten paciencia, esto puede tardar un poco...",
	},
	"This will delete every message in %s. Are you sure?": {
		"Isso vai apagar todas as mensagens de %s. Tem certeza?",
		"Esto borrará todos los mensajes de %s. ¿Estás seguro?",
	},
	"Deleted %d messages.": {
		"%d mensagens apagadas.",
		"%d mensajes borrados.",
	},

	// moderation
	"Kicked %s. Reason: `%s`.": {
		"%s foi expulso. Motivo: `%s`.",
		"%s fue expulsado. Motivo: `%s`.",
	},
	"Banned %s. Reason: `%s`.": {
		"%s foi banido. Motivo: `%s`.",
		"%s fue baneado. Motivo: `%s`.",
	},
	"You have been kicked from `%s`. Reason: `%s`.": {
		"Você foi expulso de `%s`. Motivo: `%s`.",
		"Has sido expulsado de `%s`. Motivo: `%s`.",
	},
	"You have been banned from `%s`. Reason: `%s`.": {
		"Você foi banido de `%s`. Motivo: `%s`.",
		"Has sido baneado de `%s`. Motivo: `%s`.",
	},
	"No reason provided": {"Nenhum motivo informado", "Sin motivo"},
	"Unbanned %s.": {
		"%s foi desbanido.",
		"%s fue desbaneado.",
	},
	"No banned user matching `%s` was found.": {
		"Nenhum usuário banido correspondente a `%s` foi encontrado.",
		"No se encontró ningún usuario baneado que coincida con `%s`.",
	},
	"Couldn't find a member matching `%s`.": {
		"Não encontrei um membro correspondente a `%s`.",
		"No encontré un miembro que coincida con `%s`.",
	},
	"More than one member matches `%s`, use a mention or their ID.": {
		"Mais de um membro corresponde a `%s`, use uma menção ou o ID.",
		"Más de un miembro coincide con `%s`, usa una mención o su ID.",
	},
	"I can't do that to %s.": {
		"Não posso fazer isso com %s.",
		"No puedo hacerle eso a %s.",
	},
	"Kicked %d members.": {
		"%d membros expulsos.",
		"%d miembros expulsados.",
	},
	"Banned %d members.": {
		"%d membros banidos.",
		"%d miembros baneados.",
	},
	"Couldn't resolve: %s": {
		"Não consegui identificar: %s",
		"No pude identificar: %s",
	},
	"Couldn't act on: %s": {
		"Não consegui agir sobre: %s",
		"No pude actuar sobre: %s",
	},

	// settings
	"The prefix of this server is `%s`.": {
		"O prefixo deste servidor é `%s`.",
		"El prefijo de este servidor es `%s`.",
	},
	"Prefix changed to `%s`.": {
		"Prefixo alterado para `%s`.",
		"Prefijo cambiado a `%s`.",
	},
	"Invalid prefix, it must have between 1 and %d characters and no spaces.": {
		"Prefixo inválido, ele deve ter entre 1 e %d caracteres e nenhum espaço.",
		"Prefijo inválido, debe tener entre 1 y %d caracteres y ningún espacio.",
	},
	"The timezone of this server is `%s`.": {
		"O fuso horário deste servidor é `%s`.",
		"La zona horaria de este servidor es `%s`.",
	},
	"Timezone changed to `%s`.": {
		"Fuso horário alterado para `%s`.",
		"Zona horaria cambiada a `%s`.",
	},
	"Unknown timezone `%s`, use a name like `America/Sao_Paulo`.": {
		"Fuso horário `%s` desconhecido, use um nome como `America/Sao_Paulo`.",
		"Zona horaria `%s` desconocida, usa un nombre como `America/Sao_Paulo`.",
	},
	"The locale of this server is `%s`.": {
		"O idioma deste servidor é `%s`.",
		"El idioma de este servidor es `%s`.",
	},
	"Locale changed to `%s`.": {
		"Idioma alterado para `%s`.",
		"Idioma cambiado a `%s`.",
	},
	"Unsupported locale `%s`. Supported locales: %s.": {
		"Idioma `%s` não suportado. Idiomas suportados: %s.",
		"Idioma `%s` no soportado. Idiomas soportados: %s.",
	},

	// birthday
	"No birthday saved for %s.": {
		"Nenhum aniversário salvo para %s.",
		"No hay cumpleaños guardado para %s.",
	},
	"%s's birthday is on %s.": {
		"O aniversário de %s é em %s.",
		"El cumpleaños de %s es el %s.",
	},
	"Birthday saved: %s.": {
		"Aniversário salvo: %s.",
		"Cumpleaños guardado: %s.",
	},
	"Birthday removed.": {
		"Aniversário removido.",
		"Cumpleaños eliminado.",
	},
	"Couldn't read the date `%s`, try `YYYY-MM-DD`, `DD/MM` or `march 5th`.": {
		"Não entendi a data `%s`, tente `AAAA-MM-DD`, `DD/MM` ou `march 5th`.",
		"No entendí la fecha `%s`, prueba `AAAA-MM-DD`, `DD/MM` o `march 5th`.",
	},
	"No birthdays saved in this server.": {
		"Nenhum aniversário salvo neste servidor.",
		"No hay cumpleaños guardados en este servidor.",
	},
	"Upcoming birthdays": {
		"Próximos aniversários",
		"Próximos cumpleaños",
	},
	"today":    {"hoje", "hoy"},
	"tomorrow": {"amanhã", "mañana"},
	"in %d days": {
		"em %d dias",
		"en %d días",
	},
	"%[1]s %[2]d": {
		"%[2]d de %[1]s",
		"%[2]d de %[1]s",
	},
	"%[1]s %[2]d, %[3]s": {
		"%[2]d de %[1]s de %[3]s",
		"%[2]d de %[1]s de %[3]s",
	},
	"January":   {"janeiro", "enero"},
	"February":  {"fevereiro", "febrero"},
	"March":     {"março", "marzo"},
	"April":     {"abril", "abril"},
	"May":       {"maio", "mayo"},
	"June":      {"junho", "junio"},
	"July":      {"julho", "julio"},
	"August":    {"agosto", "agosto"},
	"September": {"setembro", "septiembre"},
	"October":   {"outubro", "octubre"},
	"November":  {"novembro", "noviembre"},
	"December":  {"dezembro", "diciembre"},
	"Birthdays will be announced in %s.": {
		"Os aniversários serão anunciados em %s.",
		"Los cumpleaños se anunciarán en %s.",
	},
	"Birthdays won't be announced anymore.": {
		"Os aniversários não serão mais anunciados.",
		"Los cumpleaños ya no se anunciarán.",
	},
	"Happy birthday!": {
		"Feliz aniversário!",
		"¡Feliz cumpleaños!",
	},
	"Happy birthday %s, turning %d today!": {
		"Feliz aniversário %s, fazendo %d anos hoje!",
		"¡Feliz cumpleaños %s, cumple %d años hoy!",
	},
	"Happy birthday %s!": {
		"Feliz aniversário %s!",
		"¡Feliz cumpleaños %s!",
	},
}
